package identity

// Context identifies who is acting and under which brand. The sync engine
// treats this as an external collaborator: it never resolves identities
// itself, it only reads them.
type Context struct {
	// BrandID is the tenant the cache is scoped to.
	BrandID string `mapstructure:"brand_id" default:""`
	// UserID is the acting user. Item creation requires it.
	UserID string `mapstructure:"user_id" default:""`
}

// HasUser reports whether an acting user is known.
func (c Context) HasUser() bool {
	return c.UserID != ""
}
