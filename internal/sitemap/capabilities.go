package sitemap

// Capabilities records which extension namespaces the entries of a
// document require. Flags are monotonic: encoding an entry can only set
// them, never clear them. The document writer owns the lifecycle and
// resets them when a new physical document opens.
type Capabilities struct {
	News   bool
	Images bool
	Videos bool
}

// Merge ORs the other capabilities into c. The result is monotonic: a
// flag set on either side stays set.
func (c *Capabilities) Merge(other Capabilities) {
	c.News = c.News || other.News
	c.Images = c.Images || other.Images
	c.Videos = c.Videos || other.Videos
}

// Reset clears all flags. Only the document writer should call this,
// when it opens a new document.
func (c *Capabilities) Reset() {
	*c = Capabilities{}
}

// Any reports whether any extension namespace is required.
func (c *Capabilities) Any() bool {
	return c.News || c.Images || c.Videos
}
