package chart

import (
	"context"
	"fmt"
)

// FallbackText is returned for any interpretation key the store does not
// cover. Editorial coverage is expected to be incomplete; a missing key
// never fails the request.
const FallbackText = "No interpretation available."

// Interpretation key builders. Keys are flat "category:detail" strings.
func PlanetSignKey(planet, sign string) string { return "planet_sign:" + planet + ":" + sign }
func PlanetHouseKey(planet string, house int) string {
	return fmt.Sprintf("planet_house:%s:%d", planet, house)
}
func AspectKey(aspectName string) string   { return "aspect:" + aspectName }
func ShapeKey(shape string) string         { return "chart_shape:" + shape }
func DistributionKey(bucket string) string { return "distribution:" + bucket }

// lookupOrFallback resolves one key, substituting the fallback marker when
// the store has no text.
func lookupOrFallback(ctx context.Context, store InterpretationStore, key string) (string, error) {
	text, ok, err := store.Lookup(ctx, key)
	if err != nil {
		return "", fmt.Errorf("interpretation lookup %s: %w", key, err)
	}
	if !ok {
		return FallbackText, nil
	}
	return text, nil
}

// resolveInterpretations builds every key the facts entail and resolves each
// against the store. The returned maps always hold a value (real or
// fallback) for every required key.
func (s *Service) resolveInterpretations(ctx context.Context, snap Snapshot, facts Facts) (Interpretations, error) {
	out := Interpretations{
		PlanetInSign:  make(map[string]string, len(snap.Planets)),
		PlanetInHouse: make(map[string]string, len(snap.Planets)),
		Aspects:       make(map[string]string, len(facts.Aspects)),
		Distribution:  make(map[string]string, len(facts.Emphasized)),
	}

	for _, p := range snap.Planets {
		label := fmt.Sprintf("%s in %s", p.Name, p.Sign)
		text, err := lookupOrFallback(ctx, s.store, PlanetSignKey(p.Name, p.Sign))
		if err != nil {
			return Interpretations{}, err
		}
		out.PlanetInSign[label] = text

		if p.House >= 1 && p.House <= 12 {
			label = fmt.Sprintf("%s in House %d", p.Name, p.House)
			text, err = lookupOrFallback(ctx, s.store, PlanetHouseKey(p.Name, p.House))
			if err != nil {
				return Interpretations{}, err
			}
			out.PlanetInHouse[label] = text
		}
	}

	for _, a := range facts.Aspects {
		label := fmt.Sprintf("%s %s %s", a.Planet1, a.Name, a.Planet2)
		text, err := lookupOrFallback(ctx, s.store, AspectKey(a.Name))
		if err != nil {
			return Interpretations{}, err
		}
		out.Aspects[label] = text
	}

	if facts.Shape != "" {
		text, err := lookupOrFallback(ctx, s.store, ShapeKey(facts.Shape))
		if err != nil {
			return Interpretations{}, err
		}
		out.ChartShape = text
	}

	for _, bucket := range facts.Emphasized {
		text, err := lookupOrFallback(ctx, s.store, DistributionKey(bucket))
		if err != nil {
			return Interpretations{}, err
		}
		out.Distribution[bucket] = text
	}

	return out, nil
}
