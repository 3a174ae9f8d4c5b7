package selection

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreIsNotStarted(t *testing.T) {
	s := NewStore()

	assert.Equal(t, NotStarted, s.State())
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Entries())
	assert.Equal(t, "Select a PDF to OCR", s.Summary())
}

func TestAddKeepsOrderAndDuplicates(t *testing.T) {
	s := NewStore()
	s.Add("a.pdf")
	s.Add("b.pdf")
	s.Add("a.pdf")

	assert.Equal(t, HasEntries, s.State())
	assert.Equal(t, []string{"a.pdf", "b.pdf", "a.pdf"}, s.Paths())
}

func TestRemoveDeletesAllMatches(t *testing.T) {
	s := NewStore()
	s.Add("a")
	s.Add("b")
	s.Add("a")

	removed := s.Remove("a")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b"}, s.Paths())
}

func TestRemoveWithoutMatchLeavesListUnchanged(t *testing.T) {
	s := NewStore()
	s.Add("a")
	s.Add("b")

	removed := s.Remove("c")

	assert.Zero(t, removed)
	assert.Equal(t, []string{"a", "b"}, s.Paths())
	assert.Equal(t, HasEntries, s.State())
}

func TestRemovingLastEntryKeepsHasEntries(t *testing.T) {
	s := NewStore()
	s.Add("only.pdf")

	s.Remove("only.pdf")

	assert.Zero(t, s.Len())
	assert.Equal(t, HasEntries, s.State())
	assert.Equal(t, "Selection is empty", s.Summary())
}

func TestClearResetsToNotStarted(t *testing.T) {
	for _, paths := range [][]string{nil, {"a"}, {"a", "b", "a"}} {
		s := NewStore()
		for _, p := range paths {
			s.Add(p)
		}
		s.Remove("b")

		s.Clear()

		assert.Equal(t, NotStarted, s.State())
		assert.Zero(t, s.Len())
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add("a.pdf")

	entries := s.Entries()
	entries[0].Path = "mutated"

	assert.Equal(t, []string{"a.pdf"}, s.Paths())
}

func TestAt(t *testing.T) {
	s := NewStore()
	s.Add("/scans/one.pdf")

	e, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, "one.pdf", e.Name())

	_, ok = s.At(1)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	s := NewStore()
	s.Add("x")

	assert.True(t, s.Contains("x"))
	assert.False(t, s.Contains("y"))
}

func TestSummary(t *testing.T) {
	s := NewStore()
	s.Add("/tmp/scan.pdf")
	assert.Equal(t, "Selected 1 file: scan.pdf", s.Summary())

	s.Add("/tmp/b.png")
	s.Add("/tmp/c.jpg")
	s.Add("/tmp/d.tiff")
	assert.Equal(t, "Selected 4 files: scan.pdf, b.png, c.jpg, …", s.Summary())
}

// model is the obvious reference: the list of adds not yet removed
type model struct {
	paths []string
}

func (m *model) add(p string) { m.paths = append(m.paths, p) }

func (m *model) remove(p string) {
	kept := []string{}
	for _, q := range m.paths {
		if q != p {
			kept = append(kept, q)
		}
	}
	m.paths = kept
}

func (m *model) clear() { m.paths = nil }

func TestRandomOperationSequencesMatchModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a.pdf", "b.pdf", "c.png", "/x/a.pdf"}

	for round := 0; round < 200; round++ {
		s := NewStore()
		m := &model{}

		for step := 0; step < 30; step++ {
			p := alphabet[rng.Intn(len(alphabet))]
			switch op := rng.Intn(10); {
			case op < 6:
				s.Add(p)
				m.add(p)
			case op < 9:
				s.Remove(p)
				m.remove(p)
			default:
				s.Clear()
				m.clear()
			}

			want := m.paths
			if want == nil {
				want = []string{}
			}
			require.Equal(t, want, s.Paths(), fmt.Sprintf("round %d step %d", round, step))
		}
	}
}
