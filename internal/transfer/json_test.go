package transfer

import (
	"path/filepath"
	"testing"

	"github.com/example/flashquiz/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func str(s string) *string { return &s }
func num(n int64) *int64   { return &n }

func testArchive() *Archive {
	return &Archive{
		Categories: []CategoryJSON{
			{
				Name: "animals",
				Pools: []PoolJSON{
					{
						ID: 1,
						Cards: []CardJSON{
							{Front: str("dog"), Back: str("犬")},
							{Front: str("cat"), Back: str("猫"), Score: num(2)},
							{FrontImage: str("img/bird.png"), Back: str("鳥")},
							{Front: str("broken")}, // no back face
						},
					},
				},
			},
		},
	}
}

func TestCardJSONValid(t *testing.T) {
	assert.True(t, CardJSON{Front: str("a"), Back: str("b")}.Valid())
	assert.True(t, CardJSON{FrontImage: str("a.png"), BackImage: str("b.png")}.Valid())
	assert.False(t, CardJSON{Front: str("a")}.Valid())
	assert.False(t, CardJSON{Back: str("b")}.Valid())
	assert.False(t, CardJSON{}.Valid())
}

func TestImport(t *testing.T) {
	store := newTestStore(t)
	importer := NewImporter(store)

	result, err := importer.Import(testArchive())
	require.NoError(t, err)
	assert.Equal(t, 1, result.CategoriesCreated)
	assert.Equal(t, 1, result.PoolsCreated)
	assert.Equal(t, 3, result.CardsCreated)
	assert.Equal(t, 1, result.CardsSkipped)

	cards, err := database.NewCardRepository(store).GetInPool(1)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "dog", cards[0].Front)
	assert.Equal(t, int64(2), cards[1].Score.Int64)
	assert.Equal(t, "img/bird.png", cards[2].FrontImage)
	for _, card := range cards {
		assert.Equal(t, "animals", card.CategoryName.String)
	}
}

func TestImportReusesExistingRows(t *testing.T) {
	store := newTestStore(t)
	importer := NewImporter(store)

	_, err := importer.Import(testArchive())
	require.NoError(t, err)

	// A second import reuses the category and pool. Cards are appended
	// again; the archive carries no stable identity to dedupe on.
	result, err := importer.Import(testArchive())
	require.NoError(t, err)
	assert.Equal(t, 0, result.CategoriesCreated)
	assert.Equal(t, 0, result.PoolsCreated)
	assert.Equal(t, 3, result.CardsCreated)

	cards, err := database.NewCardRepository(store).GetInPool(1)
	require.NoError(t, err)
	assert.Len(t, cards, 6)
}

func TestExportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	importer := NewImporter(store)

	_, err := importer.Import(testArchive())
	require.NoError(t, err)

	exported, err := importer.Export()
	require.NoError(t, err)
	require.Len(t, exported.Categories, 1)
	assert.Equal(t, "animals", exported.Categories[0].Name)
	require.Len(t, exported.Categories[0].Pools, 1)

	pool := exported.Categories[0].Pools[0]
	assert.Equal(t, int64(1), pool.ID)
	require.Len(t, pool.Cards, 3)
	assert.Equal(t, "dog", *pool.Cards[0].Front)
	assert.Equal(t, "犬", *pool.Cards[0].Back)
	assert.Equal(t, int64(2), *pool.Cards[1].Score)
	assert.Equal(t, "img/bird.png", *pool.Cards[2].FrontImage)
	assert.Nil(t, pool.Cards[2].Front)
}

func TestImportExportFiles(t *testing.T) {
	store := newTestStore(t)
	importer := NewImporter(store)

	_, err := importer.Import(testArchive())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "archive.json")
	require.NoError(t, importer.ExportFile(path))

	second := newTestStore(t)
	result, err := NewImporter(second).ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CategoriesCreated)
	assert.Equal(t, 3, result.CardsCreated)
	assert.Equal(t, 0, result.CardsSkipped)
}

func TestImportFileMalformed(t *testing.T) {
	store := newTestStore(t)

	_, err := NewImporter(store).ImportFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
