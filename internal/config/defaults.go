package config

const (
	defaultTitlesFile          = "titles.txt"
	defaultDownloadDir         = "Music"
	defaultSeparator           = " -> "
	defaultSearchBackend       = "html"
	defaultSearchBaseURL       = "https://www.youtube.com"
	defaultSearchCandidates    = 1
	defaultSearchMaxAttempts   = 10
	defaultSearchTimeout       = 30
	defaultSearchUserAgent     = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	defaultDownloadBackend     = "youtube"
	defaultDownloadMaxAttempts = 5
	defaultSourceExt           = "mp4"
	defaultTargetExt           = "mp3"
	defaultNaming              = NamingTitle
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultVerbosity           = 1
)

// Naming modes for downloaded files.
const (
	NamingTitle = "title"
	NamingLabel = "label"
)

// Search backends.
const (
	SearchBackendHTML  = "html"
	SearchBackendYtdlp = "ytdlp"
)

// Download backends.
const (
	DownloadBackendYouTube = "youtube"
	DownloadBackendYtdlp   = "ytdlp"
)

// Default returns a Config populated with repository defaults. Relative paths
// resolve against the working directory during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			TitlesFile:  defaultTitlesFile,
			DownloadDir: defaultDownloadDir,
		},
		Titles: Titles{
			Separator: defaultSeparator,
			Backup:    true,
		},
		Search: Search{
			Backend:        defaultSearchBackend,
			BaseURL:        defaultSearchBaseURL,
			Candidates:     defaultSearchCandidates,
			MaxAttempts:    defaultSearchMaxAttempts,
			RequestTimeout: defaultSearchTimeout,
			UserAgent:      defaultSearchUserAgent,
		},
		Download: Download{
			Backend:            defaultDownloadBackend,
			MaxAttempts:        defaultDownloadMaxAttempts,
			SourceExt:          defaultSourceExt,
			TargetExt:          defaultTargetExt,
			Convert:            false,
			NormalizeExtension: true,
			ReResolve:          false,
			Naming:             defaultNaming,
		},
		Logging: Logging{
			Format:    defaultLogFormat,
			Level:     defaultLogLevel,
			Verbosity: defaultVerbosity,
		},
	}
}
