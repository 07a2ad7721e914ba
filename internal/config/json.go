package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the server config.
// Secrets (API key, token sign key) are deliberately not accepted here.
type StructuredJSONConfig struct {
	App struct {
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			VideoDatabaseDir string `json:"video_database_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Video struct {
		Resolution         int      `json:"resolution"`
		FPS                float64  `json:"fps"`
		YtDlpPath          string   `json:"ytdlp_path"`
		FFmpegPath         string   `json:"ffmpeg_path"`
		FFprobePath        string   `json:"ffprobe_path"`
		CookiesFile        string   `json:"cookies_file"`
		SubtitleMaxRetries int      `json:"subtitle_max_retries"`
		RetryBaseDelay     Duration `json:"retry_base_delay"`
	} `json:"video,omitempty"`

	Workers struct {
		Count     int `json:"count"`
		QueueSize int `json:"queue_size"`
	} `json:"workers,omitempty"`

	LogLevel string `json:"log_level"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				VideoDatabaseDir: jsonCfg.Storage.Files.VideoDatabaseDir,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Video: Video{
			Resolution:         jsonCfg.Video.Resolution,
			FPS:                jsonCfg.Video.FPS,
			YtDlpPath:          jsonCfg.Video.YtDlpPath,
			FFmpegPath:         jsonCfg.Video.FFmpegPath,
			FFprobePath:        jsonCfg.Video.FFprobePath,
			CookiesFile:        jsonCfg.Video.CookiesFile,
			SubtitleMaxRetries: jsonCfg.Video.SubtitleMaxRetries,
			RetryBaseDelay:     time.Duration(jsonCfg.Video.RetryBaseDelay),
		},
		Workers: Workers{
			Count:     jsonCfg.Workers.Count,
			QueueSize: jsonCfg.Workers.QueueSize,
		},
		LogLevel:     jsonCfg.LogLevel,
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
