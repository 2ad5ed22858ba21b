package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mribeiro/extrato-csv/internal/models"
)

func TestSourceKeyOrderIndependent(t *testing.T) {
	a := SourceKey([]string{"/tmp/a/janeiro.csv", "/tmp/b/fevereiro.csv"})
	b := SourceKey([]string{"/tmp/b/fevereiro.csv", "/tmp/a/janeiro.csv"})

	assert.Equal(t, a, b)
	assert.Equal(t, "fevereiro.csv|janeiro.csv", a, "base names only, sorted")
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	files := []string{"extrato.csv"}
	key := SourceKey(files)

	c.putLedger("receitas\x00"+key, &models.ImportBatch{})
	c.putLedger("despesas\x00"+key, &models.ImportBatch{})
	c.putContacts(key, &models.ContactBatch{})

	c.Invalidate(files)

	_, ok := c.getLedger("receitas\x00" + key)
	assert.False(t, ok)
	_, ok = c.getLedger("despesas\x00" + key)
	assert.False(t, ok)
	_, ok = c.getContacts(key)
	assert.False(t, ok)
}

func TestCacheInvalidateLeavesOtherSets(t *testing.T) {
	c := NewCache()
	keep := "receitas\x00" + SourceKey([]string{"outro.csv"})
	c.putLedger(keep, &models.ImportBatch{})

	c.Invalidate([]string{"extrato.csv"})

	_, ok := c.getLedger(keep)
	assert.True(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	c := NewCache()
	c.putLedger("k1", &models.ImportBatch{})
	c.putContacts("k2", &models.ContactBatch{})

	c.InvalidateAll()

	_, ok := c.getLedger("k1")
	assert.False(t, ok)
	_, ok = c.getContacts("k2")
	assert.False(t, ok)
}
