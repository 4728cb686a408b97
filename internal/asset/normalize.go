// Package asset converts asset values of any historical shape into the
// canonical domain.Asset record.
package asset

import (
	"math"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
)

// Normalize returns one canonical asset per input value, in order.
// It never drops an element and never fails; now supplies lastModified
// for values that lack a usable one.
func Normalize(raw []domain.RawAsset, now time.Time) []domain.Asset {
	assets := make([]domain.Asset, len(raw))
	for i, r := range raw {
		assets[i] = NormalizeOne(r, now)
	}
	return assets
}

// NormalizeOne normalizes a single asset value.
func NormalizeOne(r domain.RawAsset, now time.Time) domain.Asset {
	a := domain.Asset{
		Name:         domain.DefaultAssetName,
		Size:         0,
		Type:         domain.DefaultAssetType,
		LastModified: now.UnixMilli(),
	}

	switch r.Kind {
	case domain.RawAssetText:
		a.Name = r.Text
	case domain.RawAssetRecord:
		if r.Name != nil {
			a.Name = *r.Name
		}
		if size, ok := wholeNumber(r.Size); ok && size >= 0 {
			a.Size = size
		}
		if r.Type != nil && *r.Type != "" {
			a.Type = *r.Type
		}
		if ms, ok := wholeNumber(r.LastModified); ok && ms > 0 {
			a.LastModified = ms
		}
	}

	return a
}

// FromAssets lifts normalized assets back into raw form, so stored records
// can go through Normalize again.
func FromAssets(assets []domain.Asset) []domain.RawAsset {
	raw := make([]domain.RawAsset, len(assets))
	for i, a := range assets {
		raw[i] = domain.RecordAsset(a)
	}
	return raw
}

// wholeNumber truncates f to an int64, rejecting NaN and values out of range.
func wholeNumber(f *float64) (int64, bool) {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return 0, false
	}
	if *f >= math.MaxInt64 || *f < math.MinInt64 {
		return 0, false
	}
	return int64(*f), true
}
