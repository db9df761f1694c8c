package pricing

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"rds-cost/core/types"
	"rds-cost/internal/errors"
)

// priceDocument is the slice of a price list product document we read.
type priceDocument struct {
	Product struct {
		SKU        string            `json:"sku"`
		Attributes map[string]string `json:"attributes"`
	} `json:"product"`
	Terms struct {
		OnDemand map[string]priceTerm `json:"OnDemand"`
		Reserved map[string]priceTerm `json:"Reserved"`
	} `json:"terms"`
}

type priceTerm struct {
	TermAttributes  map[string]string         `json:"termAttributes"`
	PriceDimensions map[string]priceDimension `json:"priceDimensions"`
}

type priceDimension struct {
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

func decodeDocument(raw string) (*priceDocument, error) {
	var doc priceDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, errors.Parsing("decoding price list document", err)
	}
	return &doc, nil
}

func (d *priceDimension) usd() (decimal.Decimal, bool) {
	raw, ok := d.PricePerUnit["USD"]
	if !ok {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// parseOnDemand pulls the hourly rate out of the OnDemand term.
func parseOnDemand(doc *priceDocument) (decimal.Decimal, bool) {
	for _, term := range doc.Terms.OnDemand {
		for _, dim := range term.PriceDimensions {
			if !strings.EqualFold(dim.Unit, "hrs") {
				continue
			}
			if v, ok := dim.usd(); ok && v.IsPositive() {
				return v, true
			}
		}
	}
	return decimal.Zero, false
}

// findReservedTerm locates the reserved term matching a purchase option.
// The offer code embedded in the term key is authoritative; termAttributes
// are the fallback for documents with unknown codes.
func findReservedTerm(doc *priceDocument, opt types.PricingOption) (priceTerm, bool) {
	want, ok := termFor(opt)
	if !ok {
		return priceTerm{}, false
	}

	for key, term := range doc.Terms.Reserved {
		if code, found := strings.CutPrefix(key, doc.Product.SKU+"."); found {
			if got, known := riOfferCodes[code]; known {
				if got == want {
					return term, true
				}
				continue
			}
		}
		if term.TermAttributes["LeaseContractLength"] == leaseLength(want.Years) &&
			term.TermAttributes["PurchaseOption"] == want.PurchaseOption {
			return term, true
		}
	}
	return priceTerm{}, false
}

// parseReserved pulls the upfront fee and monthly recurring fee for one
// purchase option. The quantity dimension is the upfront charge; the hourly
// dimension converts at 730 hours per month.
func parseReserved(doc *priceDocument, opt types.PricingOption) (upfront, monthly decimal.Decimal, ok bool) {
	term, found := findReservedTerm(doc, opt)
	if !found {
		return decimal.Zero, decimal.Zero, false
	}

	for _, dim := range term.PriceDimensions {
		v, priced := dim.usd()
		if !priced {
			continue
		}
		switch {
		case strings.EqualFold(dim.Unit, "quantity"):
			upfront = v
			ok = true
		case strings.EqualFold(dim.Unit, "hrs"):
			monthly = v.Mul(decimal.NewFromInt(types.HoursPerMonth))
			ok = true
		}
	}
	return upfront, monthly, ok
}
