// Package repository provides data access layer implementations for the application.
package repository

import "gorm.io/gorm"

// ArtworkFilter describes the content-visibility restrictions for artwork
// listings. The two flags behave differently and the asymmetry is a contract:
//
//   - ShowNsfw is a gate: false restricts results to non-NSFW artworks,
//     true lifts the restriction entirely (both NSFW and non-NSFW appear).
//   - AiGenerated is an exact-match filter: when set, results must carry
//     exactly that value; when nil, no restriction is applied.
//
// Conditions combine with AND. The zero value hides NSFW and leaves
// AI-generated unrestricted.
type ArtworkFilter struct {
	ShowNsfw    bool
	AiGenerated *bool
}

// Permissive returns a filter that applies no restrictions at all.
func Permissive() ArtworkFilter {
	return ArtworkFilter{ShowNsfw: true}
}

// Scope translates the filter value into a finished query scope. The filter
// is a plain value and the returned scope closes over it; nothing is
// accumulated in a mutable builder between calls.
func (f ArtworkFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !f.ShowNsfw {
			db = db.Where("is_nsfw = ?", false)
		}
		if f.AiGenerated != nil {
			db = db.Where("is_ai_generated = ?", *f.AiGenerated)
		}
		return db
	}
}

// paginate applies limit/offset when positive. A limit of zero means
// unbounded, which the cascade paths rely on.
func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}
