package transfer

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/example/flashquiz/internal/database"
	"github.com/example/flashquiz/pkg/models"
)

// Archive is the on-disk JSON layout: a category tree with nested pools
// and cards.
type Archive struct {
	Categories []CategoryJSON `json:"categories"`
}

// CategoryJSON is one exported category with its pools.
type CategoryJSON struct {
	Name  string     `json:"name"`
	Pools []PoolJSON `json:"pools"`
}

// PoolJSON is one exported pool with its cards.
type PoolJSON struct {
	ID           int64      `json:"id"`
	CategoryName *string    `json:"category_name,omitempty"`
	Cards        []CardJSON `json:"cards"`
}

// CardJSON is one exported card. Absent faces are omitted rather than
// serialized as empty strings.
type CardJSON struct {
	ID         *int64  `json:"id,omitempty"`
	Front      *string `json:"front,omitempty"`
	Back       *string `json:"back,omitempty"`
	FrontImage *string `json:"front_image,omitempty"`
	BackImage  *string `json:"back_image,omitempty"`
	Score      *int64  `json:"score,omitempty"`
}

// Valid reports whether the card can be imported: it needs at least one
// front field and at least one back field.
func (c CardJSON) Valid() bool {
	return (c.Front != nil || c.FrontImage != nil) && (c.Back != nil || c.BackImage != nil)
}

func cardToJSON(card models.Card) CardJSON {
	out := CardJSON{}
	if card.ID.Valid {
		id := card.ID.Int64
		out.ID = &id
	}
	if card.Front != "" {
		front := card.Front
		out.Front = &front
	}
	if card.Back != "" {
		back := card.Back
		out.Back = &back
	}
	if card.FrontImage != "" {
		img := card.FrontImage
		out.FrontImage = &img
	}
	if card.BackImage != "" {
		img := card.BackImage
		out.BackImage = &img
	}
	if card.Score.Valid {
		score := card.Score.Int64
		out.Score = &score
	}
	return out
}

// Result summarizes an import run.
type Result struct {
	CategoriesCreated int
	PoolsCreated      int
	CardsCreated      int
	CardsSkipped      int
}

// Importer loads JSON archives into the card store.
type Importer struct {
	categories *database.CategoryRepository
	pools      *database.PoolRepository
	cards      *database.CardRepository
}

// NewImporter creates an importer bound to the given store handle.
func NewImporter(store *database.Store) *Importer {
	return &Importer{
		categories: database.NewCategoryRepository(store),
		pools:      database.NewPoolRepository(store),
		cards:      database.NewCardRepository(store),
	}
}

// ImportFile reads a JSON archive from path and loads it. Existing
// categories and pools are reused; invalid cards are skipped with a
// warning and counted, never fatal.
func (im *Importer) ImportFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %v", err)
	}
	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("malformed JSON: %v", err)
	}
	return im.Import(&archive)
}

// Import loads an already-parsed archive.
func (im *Importer) Import(archive *Archive) (*Result, error) {
	result := &Result{}
	slog.Info("importing archive", "categories", len(archive.Categories))

	for _, category := range archive.Categories {
		slog.Info("importing category", "name", category.Name, "pools", len(category.Pools))

		if _, err := im.categories.GetOne(category.Name); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return result, err
			}
			if err := im.categories.Create(&models.Category{Name: category.Name}); err != nil {
				return result, err
			}
			result.CategoriesCreated++
		}

		for _, pool := range category.Pools {
			slog.Info("importing pool", "id", pool.ID, "cards", len(pool.Cards))

			if _, err := im.pools.GetByID(pool.ID); err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					return result, err
				}
				newPool := models.Pool{
					ID:           pool.ID,
					CategoryName: sql.NullString{String: category.Name, Valid: true},
				}
				if err := im.pools.Create(&newPool); err != nil {
					return result, err
				}
				result.PoolsCreated++
			}

			for _, card := range pool.Cards {
				if !card.Valid() {
					slog.Warn("card missing a front or back face, skipping",
						"category", category.Name, "pool", pool.ID)
					result.CardsSkipped++
					continue
				}
				newCard := jsonToCard(card, pool.ID, category.Name)
				if err := im.cards.Create(&newCard); err != nil {
					return result, err
				}
				result.CardsCreated++
			}
		}
	}

	return result, nil
}

func jsonToCard(card CardJSON, poolID int64, categoryName string) models.Card {
	out := models.Card{
		PoolID:       sql.NullInt64{Int64: poolID, Valid: true},
		CategoryName: sql.NullString{String: categoryName, Valid: true},
	}
	if card.Front != nil {
		out.Front = *card.Front
	}
	if card.Back != nil {
		out.Back = *card.Back
	}
	if card.FrontImage != nil {
		out.FrontImage = *card.FrontImage
	}
	if card.BackImage != nil {
		out.BackImage = *card.BackImage
	}
	if card.Score != nil {
		out.Score = sql.NullInt64{Int64: *card.Score, Valid: true}
	}
	return out
}

// Export walks the whole store into an archive.
func (im *Importer) Export() (*Archive, error) {
	archive := &Archive{}

	categories, err := im.categories.GetAll()
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		exported := CategoryJSON{Name: category.Name}

		pools, err := im.pools.GetAllInCategory(category.Name)
		if err != nil {
			return nil, err
		}
		for _, pool := range pools {
			exportedPool := PoolJSON{ID: pool.ID}
			if pool.CategoryName.Valid {
				name := pool.CategoryName.String
				exportedPool.CategoryName = &name
			}

			cards, err := im.cards.GetInPool(pool.ID)
			if err != nil {
				return nil, err
			}
			for _, card := range cards {
				exportedPool.Cards = append(exportedPool.Cards, cardToJSON(card))
			}
			exported.Pools = append(exported.Pools, exportedPool)
		}
		archive.Categories = append(archive.Categories, exported)
	}

	return archive, nil
}

// ExportFile writes the whole store as a JSON archive to path.
func (im *Importer) ExportFile(path string) error {
	archive, err := im.Export()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode archive: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write archive: %v", err)
	}
	slog.Info("export complete", "path", path, "categories", len(archive.Categories))
	return nil
}
