package partner

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Partner is a company partner with a list of drawings taken against the
// company balance. Drawings holds the total of the current list and is
// re-derived from it on every mutation.
type Partner struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Drawings     decimal.Decimal `json:"drawings"`
	DrawingsList []Drawing       `json:"drawingsList"`
}

// Drawing is a single withdrawal by a partner. Every add debits the company
// balance by its amount; every delete credits it back.
type Drawing struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

func (d Drawing) LineAmount() decimal.Decimal { return d.Amount }

// defaultPartners seeds the collection on first load, matching the set the
// mobile app shipped with.
func defaultPartners() []Partner {
	names := []string{"Umer Muti", "Habibullah", "Shoaib"}
	partners := make([]Partner, 0, len(names))
	for i, name := range names {
		partners = append(partners, Partner{
			ID:           strconv.Itoa(i + 1),
			Name:         name,
			Drawings:     decimal.Zero,
			DrawingsList: []Drawing{},
		})
	}
	return partners
}
