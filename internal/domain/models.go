package domain

// The types below map the catalog onto SQLite for the snapshot data source.
// They are read once at load time and converted into a MessageDatabase; the
// service never queries them per request.

// CatalogMeta is a key/value row of catalog metadata. The "version" key holds
// the database version.
//
// Fields:
//   - Key: metadata name (primary key).
//   - Value: metadata value.
type CatalogMeta struct {
	Key   string `gorm:"type:varchar(64);primaryKey"`
	Value string `gorm:"type:text;not null"`
}

// TableName returns the database table name for CatalogMeta.
func (CatalogMeta) TableName() string { return "catalog_meta" }

// MetaKeyVersion is the CatalogMeta key holding the database version.
const MetaKeyVersion = "version"

// MessageSet declares that a Category × Tone key exists. A set with no
// MessageRow entries is an empty (but present) list.
type MessageSet struct {
	Category string `gorm:"type:varchar(32);primaryKey"`
	Tone     string `gorm:"type:varchar(32);primaryKey"`
}

// TableName returns the database table name for MessageSet.
func (MessageSet) TableName() string { return "message_sets" }

// MessageRow is one message of a set. Rows are ordered by Position, then ID.
//
// Fields:
//   - ID: autoincrement primary key, used as a stable tie-break.
//   - Category / Tone: the owning set (indexed together with Position).
//   - Position: zero-based index within the list.
//   - Body: message text.
type MessageRow struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Category string `gorm:"type:varchar(32);not null;index:idx_set_position,priority:1"`
	Tone     string `gorm:"type:varchar(32);not null;index:idx_set_position,priority:2"`
	Position int    `gorm:"not null;index:idx_set_position,priority:3"`
	Body     string `gorm:"type:text;not null"`
}

// TableName returns the database table name for MessageRow.
func (MessageRow) TableName() string { return "messages" }
