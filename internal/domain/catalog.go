package domain

// CatalogConfigID is the fixed key of the singleton catalog configuration.
const CatalogConfigID = 1

// CatalogConfig is the storefront-wide singleton holding the banner and the
// registered category names. Version is bumped on every successful save and is
// what concurrent writers compare against.
type CatalogConfig struct {
	ID         uint     `json:"-" bson:"-" gorm:"primaryKey;autoIncrement:false"`
	Banner     string   `json:"banner" bson:"banner" gorm:"type:text"`
	Categories []string `json:"categories" bson:"categories" gorm:"type:json;serializer:json"`
	Version    int64    `json:"version" bson:"version" gorm:"not null;default:0"`
}

func NewCatalogConfig() *CatalogConfig {
	return &CatalogConfig{ID: CatalogConfigID, Categories: []string{}}
}

func (c *CatalogConfig) HasCategory(name string) bool {
	for _, existing := range c.Categories {
		if existing == name {
			return true
		}
	}
	return false
}

// AddCategory appends name unless it is already present. It reports whether
// the list changed.
func (c *CatalogConfig) AddCategory(name string) bool {
	if c.HasCategory(name) {
		return false
	}
	c.Categories = append(c.Categories, name)
	return true
}

func (c *CatalogConfig) Clone() *CatalogConfig {
	out := *c
	out.Categories = append([]string{}, c.Categories...)
	return &out
}
