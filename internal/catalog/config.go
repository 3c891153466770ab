package catalog

import "time"

// ServerConfig is one catalog-wide streaming-provider registration,
// distinct from the per-item server records. Identity is by Name alone.
type ServerConfig struct {
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Quality     string `json:"quality"`
	BaseURL     string `json:"base_url,omitempty"`
	IsOnline    bool   `json:"is_online"`
	LastChecked int64  `json:"last_checked"`
}

// SetOnline records a probe result. IsOnline is meaningless until
// LastChecked is non-zero.
func (c *ServerConfig) SetOnline(online bool) {
	c.IsOnline = online
	c.LastChecked = time.Now().UnixMilli()
}

// NeedsCheck reports whether the cached probe result is stale.
func (c *ServerConfig) NeedsCheck(ttl time.Duration) bool {
	return time.Since(time.UnixMilli(c.LastChecked)) > ttl
}

// StatusText renders the provider state for list views.
func (c *ServerConfig) StatusText() string {
	if !c.Enabled {
		return "Disabled"
	}
	if c.IsOnline {
		return "Online"
	}
	return "Offline"
}

// DefaultServerConfigs is the seed list installed on first run. BaseURL
// values are full templates with a {title} placeholder; the quality tiers
// mirror how reliable each provider has proven in practice.
func DefaultServerConfigs() []ServerConfig {
	return []ServerConfig{
		{Name: "VidSrc", BaseURL: "https://vidsrc.to/embed/{title}", Enabled: true, Quality: "High"},
		{Name: "VidSrcME", BaseURL: "https://vidsrc.me/embed/{title}", Enabled: true, Quality: "High"},
		{Name: "VidSrcTO", BaseURL: "https://vidsrc.to/embed/{title}", Enabled: true, Quality: "High"},
		{Name: "EmbedSU", BaseURL: "https://embed.su/embed/{title}", Enabled: true, Quality: "High"},
		{Name: "VidJoy", BaseURL: "https://vidjoy.pro/embed/{title}", Enabled: true, Quality: "High"},
		{Name: "MultiEmbed", BaseURL: "https://multiembed.mov/directstream.php?video_id={title}", Enabled: true, Quality: "Medium"},
		{Name: "FlixHQ", BaseURL: "https://flixhq.to/watch/{title}", Enabled: true, Quality: "Medium"},
		{Name: "HDToday", BaseURL: "https://hdtoday.tv/embed/{title}", Enabled: true, Quality: "Medium"},
		{Name: "VidCloud", BaseURL: "https://vidcloud.to/embed/{title}", Enabled: true, Quality: "Medium"},
		{Name: "StreamWish", BaseURL: "https://streamwish.to/e/{title}", Quality: "Medium"},
		{Name: "MixDrop", BaseURL: "https://mixdrop.co/e/{title}", Quality: "Medium"},
		{Name: "FileMoon", BaseURL: "https://filemoon.sx/e/{title}", Quality: "Medium"},
		{Name: "VidLink", BaseURL: "https://vidlink.pro/movie/{title}", Quality: "Medium"},
		{Name: "StreamLare", BaseURL: "https://streamlare.com/e/{title}", Quality: "Low"},
		{Name: "StreamHub", BaseURL: "https://streamhub.to/e/{title}", Quality: "Low"},
		{Name: "DoodStream", BaseURL: "https://doodstream.com/e/{title}", Quality: "Low"},
		{Name: "UpStream", BaseURL: "https://upstream.to/{title}", Quality: "Low"},
		{Name: "StreamTape", BaseURL: "https://streamtape.com/e/{title}", Quality: "Low"},
		{Name: "GoDrivePlayer", BaseURL: "https://godriveplayer.com/embed/{title}", Quality: "Low"},
		{Name: "TwoTwoEmbed", BaseURL: "https://2embed.cc/embed/{title}", Quality: "Low"},
		{Name: "EmbedSoap", BaseURL: "https://www.embedsoap.com/embed/{title}", Quality: "Low"},
		{Name: "NontonFilm", BaseURL: "https://tv.nontonguru.info/embed/{title}", Quality: "Medium"},
		{Name: "GoMovies", BaseURL: "https://gomovies.sx/watch/{title}", Quality: "Medium"},
		{Name: "ShowBox", BaseURL: "https://www.showbox.media/embed/{title}", Quality: "Medium"},
		{Name: "PrimeWire", BaseURL: "https://primewire.mx/embed/{title}", Quality: "Medium"},
		{Name: "Cataz", BaseURL: "https://cataz.net/embed/{title}", Quality: "Medium"},
	}
}
