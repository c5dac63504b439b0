package sitemap

import (
	"fmt"
	"strconv"
	"time"
)

// Options holds the per-entry metadata for a URL entry. The zero value of
// a field means "not set"; unset fields inherit from the encoder defaults
// and then from the built-in defaults.
type Options struct {
	// LastMod is either a date in YYYY-MM-DD form or a Unix timestamp
	// given as an all-digit string. Timestamps are normalized to a date.
	LastMod string `mapstructure:"lastmod" json:"lastmod"`
	// ChangeFreq is one of the sitemaps.org change frequency values.
	// The value is passed through without validation.
	ChangeFreq ChangeFreq `mapstructure:"changefreq" json:"changefreq"`
	// Priority is the entry priority in [0.0, 1.0], kept as a string so
	// the caller controls the exact representation.
	Priority string `mapstructure:"priority" json:"priority"`
	// News, when present, adds a Google News extension block.
	News *News `mapstructure:"news" json:"news,omitempty"`
	// Images, when non-empty, adds one Image extension block per image.
	Images []Image `mapstructure:"images" json:"images,omitempty"`
	// Videos, when non-empty, adds one Video extension block per video.
	Videos []Video `mapstructure:"videos" json:"videos,omitempty"`
	// Alternates, when non-empty, adds hreflang alternate link elements.
	Alternates []Alternate `mapstructure:"alternates" json:"alternates,omitempty"`
}

// News is the Google News extension block. All fields are required.
type News struct {
	PublicationName string `mapstructure:"publication_name" json:"publication_name"`
	Language        string `mapstructure:"language" json:"language"`
	Genres          string `mapstructure:"genres" json:"genres"`
	PublicationDate string `mapstructure:"publication_date" json:"publication_date"`
	Title           string `mapstructure:"title" json:"title"`
	Keywords        string `mapstructure:"keywords" json:"keywords"`
}

// Validate checks that every required news field is present.
func (n *News) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"news.publication_name", n.PublicationName},
		{"news.language", n.Language},
		{"news.genres", n.Genres},
		{"news.publication_date", n.PublicationDate},
		{"news.title", n.Title},
		{"news.keywords", n.Keywords},
	}

	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	return nil
}

// Image is a single Google Image extension block. Only Loc is required;
// absent optional fields are omitted from the output entirely.
type Image struct {
	Loc         string `mapstructure:"loc" json:"loc"`
	Caption     string `mapstructure:"caption" json:"caption,omitempty"`
	GeoLocation string `mapstructure:"geo_location" json:"geo_location,omitempty"`
	Title       string `mapstructure:"title" json:"title,omitempty"`
	License     string `mapstructure:"license" json:"license,omitempty"`
}

// Validate checks that the image location is present.
func (i *Image) Validate() error {
	if i.Loc == "" {
		return fmt.Errorf("%w: image.loc", ErrMissingField)
	}
	return nil
}

// Video is a single Google Video extension block. ThumbnailLoc, Title and
// Description are required. ContentLoc and PlayerLoc are mutually
// exclusive; when both are set, ContentLoc wins.
type Video struct {
	ThumbnailLoc string `mapstructure:"thumbnail_loc" json:"thumbnail_loc"`
	Title        string `mapstructure:"title" json:"title"`
	Description  string `mapstructure:"description" json:"description"`
	ContentLoc   string `mapstructure:"content_loc" json:"content_loc,omitempty"`
	PlayerLoc    string `mapstructure:"player_loc" json:"player_loc,omitempty"`

	Duration             string `mapstructure:"duration" json:"duration,omitempty"`
	ExpirationDate       string `mapstructure:"expiration_date" json:"expiration_date,omitempty"`
	Rating               string `mapstructure:"rating" json:"rating,omitempty"`
	ViewCount            string `mapstructure:"view_count" json:"view_count,omitempty"`
	PublicationDate      string `mapstructure:"publication_date" json:"publication_date,omitempty"`
	FamilyFriendly       string `mapstructure:"family_friendly" json:"family_friendly,omitempty"`
	Tag                  string `mapstructure:"tag" json:"tag,omitempty"`
	Category             string `mapstructure:"category" json:"category,omitempty"`
	Restriction          string `mapstructure:"restriction" json:"restriction,omitempty"`
	GalleryLoc           string `mapstructure:"gallery_loc" json:"gallery_loc,omitempty"`
	Price                string `mapstructure:"price" json:"price,omitempty"`
	RequiresSubscription string `mapstructure:"requires_subscription" json:"requires_subscription,omitempty"`
	Uploader             string `mapstructure:"uploader" json:"uploader,omitempty"`
	Platform             string `mapstructure:"platform" json:"platform,omitempty"`
	Live                 string `mapstructure:"live" json:"live,omitempty"`
}

// Validate checks that the unconditional video fields are present.
func (v *Video) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"video.thumbnail_loc", v.ThumbnailLoc},
		{"video.title", v.Title},
		{"video.description", v.Description},
	}

	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	return nil
}

// optionalFields returns the optional video fields in their fixed output
// order, paired with the tag name each one serializes under.
func (v *Video) optionalFields() []field {
	return []field{
		{"duration", v.Duration},
		{"expiration_date", v.ExpirationDate},
		{"rating", v.Rating},
		{"view_count", v.ViewCount},
		{"publication_date", v.PublicationDate},
		{"family_friendly", v.FamilyFriendly},
		{"tag", v.Tag},
		{"category", v.Category},
		{"restriction", v.Restriction},
		{"gallery_loc", v.GalleryLoc},
		{"price", v.Price},
		{"requires_subscription", v.RequiresSubscription},
		{"uploader", v.Uploader},
		{"platform", v.Platform},
		{"live", v.Live},
	}
}

// field is a tag name paired with its value.
type field struct {
	name  string
	value string
}

// Attr is a single XML attribute with its name and value.
type Attr struct {
	Name  string `mapstructure:"name" json:"name"`
	Value string `mapstructure:"value" json:"value"`
}

// Alternate describes an hreflang-style alternate link for an entry.
// Href, when present, is emitted as the href attribute first; the
// remaining attributes follow in their given order.
type Alternate struct {
	Href  string `mapstructure:"href" json:"href,omitempty"`
	Attrs []Attr `mapstructure:"attrs" json:"attrs,omitempty"`
}

// mergeOptions merges option layers with last-write-wins per field.
// The merge is shallow: a later layer replaces a field wholesale, it does
// not merge into it.
func mergeOptions(layers ...Options) Options {
	var merged Options

	for _, layer := range layers {
		if layer.LastMod != "" {
			merged.LastMod = layer.LastMod
		}
		if layer.ChangeFreq != "" {
			merged.ChangeFreq = layer.ChangeFreq
		}
		if layer.Priority != "" {
			merged.Priority = layer.Priority
		}
		if layer.News != nil {
			merged.News = layer.News
		}
		if len(layer.Images) > 0 {
			merged.Images = layer.Images
		}
		if len(layer.Videos) > 0 {
			merged.Videos = layer.Videos
		}
		if len(layer.Alternates) > 0 {
			merged.Alternates = layer.Alternates
		}
	}

	return merged
}

// builtinDefaults returns the lowest-precedence option layer.
func builtinDefaults(now time.Time) Options {
	return Options{
		LastMod:    now.UTC().Format(dateOnlyFormat),
		ChangeFreq: Daily,
		Priority:   "0.5",
	}
}

// normalizeLastMod converts an all-digit lastmod value (a Unix timestamp
// in seconds) to a YYYY-MM-DD date in UTC. Any other value passes through
// unchanged.
func normalizeLastMod(value string) string {
	if value == "" || !isDigits(value) {
		return value
	}

	ts, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return value
	}

	return time.Unix(ts, 0).UTC().Format(dateOnlyFormat)
}

// isDigits reports whether s is non-empty and consists only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
