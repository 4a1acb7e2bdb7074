package config

const (
	// MaxURLLength is the maximum accepted length for the url query
	// parameter. Browsers and most servers cap URLs around 2 KB; anything
	// longer is treated as malformed rather than fetched.
	MaxURLLength = 2048
)
