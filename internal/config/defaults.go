package config

const (
	defaultWorkDir       = "~/Videos/processing"
	defaultOriginalsDir  = "~/Videos/library/originals"
	defaultCompressedDir = "~/Videos/library/compressed"
	defaultAudioDir      = "~/Videos/library/audio"
	defaultTitleFile     = "~/Desktop/title.txt"
	defaultSourceDir     = "~/Videos"
	defaultLogDir        = "~/.local/share/videosprocessor/logs"
	defaultJournalPath   = "~/.local/share/videosprocessor/journal.db"

	defaultAudioBitrate     = "18k"
	defaultAudioApplication = "voip"
	defaultVideoCRF         = 24
	defaultVideoPreset      = "veryfast"
	defaultVideoHeight      = 480
	defaultVideoFPSCap      = 25
	defaultMetaTitle        = "الشيخ محمد فواز النمر"

	defaultTitlePollMillis = 500
	defaultLockPollMillis  = 1000

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:       defaultWorkDir,
			OriginalsDir:  defaultOriginalsDir,
			CompressedDir: defaultCompressedDir,
			AudioDir:      defaultAudioDir,
			TitleFile:     defaultTitleFile,
			SourceDir:     defaultSourceDir,
			LogDir:        defaultLogDir,
		},
		Encoding: Encoding{
			AudioBitrate:     defaultAudioBitrate,
			AudioApplication: defaultAudioApplication,
			VideoCRF:         defaultVideoCRF,
			VideoPreset:      defaultVideoPreset,
			VideoHeight:      defaultVideoHeight,
			VideoFPSCap:      defaultVideoFPSCap,
			MetaTitle:        defaultMetaTitle,
		},
		Workflow: Workflow{
			TitlePollMillis: defaultTitlePollMillis,
			LockPollMillis:  defaultLockPollMillis,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
	}
}
