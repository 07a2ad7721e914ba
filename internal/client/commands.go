package client

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/deep-video-discovery/models"
)

const (
	defaultWaitInterval = 2 * time.Second
	defaultMaxWait      = 30 * time.Minute
)

type waitOptions struct {
	enabled  bool
	interval time.Duration
	maxWait  time.Duration
}

func (o *waitOptions) bind(cmd *cobra.Command, optional bool) {
	if optional {
		cmd.Flags().BoolVarP(&o.enabled, "wait", "w", false, "wait until the video settles")
	}
	cmd.Flags().DurationVar(&o.interval, "interval", defaultWaitInterval, "polling interval while waiting")
	cmd.Flags().DurationVar(&o.maxWait, "max-wait", defaultMaxWait, "give up waiting after this long")
}

func (a *App) tokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Exchange the API key for a bearer token and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ad.Token())
			return err
		},
	}
}

func (a *App) loadCommand() *cobra.Command {
	var (
		req  models.LoadRequest
		wait waitOptions
	)

	cmd := &cobra.Command{
		Use:   "load <youtube-url|server-path>",
		Short: "Load a video into the video database",
		Long: `Load a YouTube video or a file on the server into the video database.

Loading the same source twice returns the video that is already known.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			req.Source = args[0]
			v, created, err := ad.Load(cmd.Context(), req)
			if err != nil {
				return err
			}

			if created {
				a.logger.Info().Str("video_id", v.ID).Msg("video queued")
			} else {
				a.logger.Info().Str("video_id", v.ID).Msg("video already known")
			}

			if wait.enabled {
				if v, err = a.waitForVideo(cmd.Context(), v.ID, wait); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().BoolVar(&req.WithSubtitle, "subtitle", false, "also fetch or copy an SRT subtitle")
	cmd.Flags().StringVar(&req.SubtitleSource, "subtitle-source", "", "server path of the *.srt file, or the subtitle language for YouTube")
	cmd.Flags().BoolVarP(&req.DecodeFrames, "decode", "d", false, "decode the video into frames after loading")
	wait.bind(cmd, true)

	return cmd
}

func (a *App) listCommand() *cobra.Command {
	var (
		status string
		filter models.ListFilter
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List videos of the video database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			filter.Status = models.VideoStatus(status)
			if filter.Status != "" && !filter.Status.IsValid() {
				return fmt.Errorf("unknown status %q", status)
			}

			videos, err := ad.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printVideoTable(cmd.OutOrStdout(), videos)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only list videos with this status")
	cmd.Flags().Uint64Var(&filter.Limit, "limit", 0, "maximum number of videos")
	cmd.Flags().Uint64Var(&filter.Offset, "offset", 0, "number of videos to skip")

	return cmd
}

func (a *App) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			v, err := ad.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
}

func (a *App) waitCommand() *cobra.Command {
	var wait waitOptions

	cmd := &cobra.Command{
		Use:   "wait <id>",
		Short: "Poll a video until it is loaded, decoded or failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.waitForVideo(cmd.Context(), args[0], wait)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
	wait.bind(cmd, false)

	return cmd
}

func (a *App) decodeCommand() *cobra.Command {
	var wait waitOptions

	cmd := &cobra.Command{
		Use:   "decode <id>",
		Short: "Decode a loaded video into JPEG frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			v, err := ad.DecodeFrames(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if wait.enabled {
				if v, err = a.waitForVideo(cmd.Context(), v.ID, wait); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
	wait.bind(cmd, true)

	return cmd
}

func (a *App) subtitleCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "subtitle <id>",
		Short: "Download the SRT subtitle of a YouTube video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			v, err := ad.FetchSubtitle(cmd.Context(), args[0], language)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "subtitle language code (server default: en)")

	return cmd
}

func (a *App) subtitlesCommand() *cobra.Command {
	var asSRT bool

	cmd := &cobra.Command{
		Use:   "subtitles <id>",
		Short: "Print the subtitle cues of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			if asSRT {
				raw, err := ad.SubtitlesSRT(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), raw)
				return err
			}

			cues, err := ad.Subtitles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printCues(cmd.OutOrStdout(), cues)
		},
	}
	cmd.Flags().BoolVar(&asSRT, "srt", false, "print the subtitle as an SRT document")

	return cmd
}

func (a *App) framesCommand() *cobra.Command {
	var (
		outputDir string
		names     []string
	)

	cmd := &cobra.Command{
		Use:   "frames <id>",
		Short: "List decoded frames or download them",
		Long: `Without --output the frame file names are printed. With --output the
frames (all of them, or those given with --name) are downloaded into the
directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			id := args[0]
			if outputDir == "" && len(names) > 0 {
				return ErrOutputDirRequired
			}

			if len(names) == 0 {
				if names, err = ad.Frames(cmd.Context(), id); err != nil {
					return err
				}
			}

			if outputDir == "" {
				for _, name := range names {
					if _, err = fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
						return err
					}
				}
				return nil
			}

			if err = os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			for _, name := range names {
				if err = a.downloadFrame(cmd, id, name, filepath.Join(outputDir, name)); err != nil {
					return err
				}
			}

			a.logger.Info().Int("frames", len(names)).Str("dir", outputDir).Msg("frames downloaded")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "download frames into this directory")
	cmd.Flags().StringSliceVarP(&names, "name", "n", nil, "frame file names to download")

	return cmd
}

func (a *App) downloadFrame(cmd *cobra.Command, id, name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}

	n, err := a.adapter.DownloadFrame(cmd.Context(), id, name, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("download %s: %w", name, err)
	}

	a.logger.Debug().Str("frame", name).Int64("bytes", n).Msg("frame downloaded")
	return nil
}

func (a *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a video with its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			if err = ad.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.logger.Info().Str("video_id", args[0]).Msg("video deleted")
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the client build info and the server version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationPublic: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Client version: %s\n", a.buildInfo.Version)
			fmt.Fprintf(out, "Client build date: %s\n", a.buildInfo.Date)
			fmt.Fprintf(out, "Client build commit: %s\n", a.buildInfo.Commit)

			ad, err := a.serverAdapter()
			if err != nil {
				return err
			}

			version, err := ad.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("server version: %w", err)
			}
			_, err = fmt.Fprintf(out, "Server version: %s\n", version)
			return err
		},
	}
}
