package assets

type Config struct {
	// Metafile name, written next to the bundle
	MetafileName string
	// HTML page name, written to the style guide directory
	HTMLFilename string
	// Working directory used to resolve relative output paths, defaults to the process cwd
	WorkingDir string
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		MetafileName: "meta.json",
		HTMLFilename: "index.html",
	}
}
