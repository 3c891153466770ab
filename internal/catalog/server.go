package catalog

import (
	"encoding/json"
	"strings"
)

// Server is one provider+URL association attached to an item. DRM is nil
// for clear streams; a non-nil DRM with an empty License means "protected,
// license delivered in-band".
type Server struct {
	Name string
	URL  string
	DRM  *DRM
}

// DRM marks a protected stream and optionally carries its license key or
// license-server URL.
type DRM struct {
	License string
}

// ParseServer decodes the pipe-delimited record grammar
// "name|url[|drm:<true|license>]". The split is capped at three fields, so
// a URL containing a literal '|' corrupts the record; that is a known
// constraint of the grammar, inherited from existing exports.
//
// When the drm segment is absent, a URL carrying "license=" or a ".mpd"
// manifest is treated as an implicit DRM signal. This inference happens
// only here, at the parsing boundary; data that has round-tripped once
// carries the explicit segment instead.
func ParseServer(raw string) (Server, bool) {
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Server{}, false
	}
	s := Server{Name: parts[0], URL: parts[1]}
	if len(parts) > 2 && strings.HasPrefix(parts[2], "drm:") {
		info := strings.TrimPrefix(parts[2], "drm:")
		if info == "true" {
			s.DRM = &DRM{}
		} else {
			s.DRM = &DRM{License: info}
		}
		return s, true
	}
	if strings.Contains(s.URL, "license=") || strings.Contains(s.URL, ".mpd") {
		s.DRM = &DRM{License: licenseFromURL(s.URL)}
	}
	return s, true
}

// String re-encodes the record in the pipe grammar.
func (s Server) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('|')
	b.WriteString(s.URL)
	if s.DRM != nil {
		b.WriteString("|drm:")
		if s.DRM.License != "" {
			b.WriteString(s.DRM.License)
		} else {
			b.WriteString("true")
		}
	}
	return b.String()
}

// MarshalJSON keeps the pipe-string form in persisted item blobs for
// byte-compatibility with existing stored catalogs.
func (s Server) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the pipe-string form.
func (s *Server) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, ok := ParseServer(raw)
	if !ok {
		// Tolerate malformed stored records rather than failing the
		// whole item; the record decodes to an empty server that
		// callers drop.
		*s = Server{}
		return nil
	}
	*s = parsed
	return nil
}

func licenseFromURL(url string) string {
	const marker = "license="
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	lic := url[i+len(marker):]
	if j := strings.IndexByte(lic, '&'); j >= 0 {
		lic = lic[:j]
	}
	return lic
}
