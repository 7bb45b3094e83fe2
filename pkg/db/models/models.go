package models

// All lists every persisted model in dependency order, for AutoMigrate in tests
// and in the sqlite dev driver.
func All() []any {
	return []any{
		&User{},
		&Product{},
		&WishlistItem{},
	}
}
