package client

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/deep-video-discovery/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printVideoTable(w io.Writer, videos []models.Video) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tSOURCE\tFRAMES\tUPDATED")
	for _, v := range videos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			v.ID, v.Status, v.Source, v.FrameCount, v.UpdatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func printCues(w io.Writer, cues []models.Cue) error {
	for _, c := range cues {
		if _, err := fmt.Fprintf(w, "[%s - %s] %s\n", formatOffset(c.Start), formatOffset(c.End), c.Text); err != nil {
			return err
		}
	}
	return nil
}

func formatOffset(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}
