package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/pkg/keyword"
)

// PlaceInput - свободный текст и/или place id из автокомплита
type PlaceInput struct {
	Text    string
	PlaceID string
}

// PlaceNormalizer - приведение ввода пользователя к структурированному месту
type PlaceNormalizer struct {
	geocoder repository.Geocoder
	cache    repository.CacheRepository
	logger   *zap.Logger
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewPlaceNormalizer - создание нормализатора. cache может быть nil.
func NewPlaceNormalizer(
	geocoder repository.Geocoder,
	cache repository.CacheRepository,
	logger *zap.Logger,
	timeout time.Duration,
	cacheTTL time.Duration,
) *PlaceNormalizer {
	return &PlaceNormalizer{
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

// Normalize resolves in to a Place. Lookup failures degrade to an empty Place labelled
// with the raw text; only a timeout or a cancelled request is returned as an error.
func (n *PlaceNormalizer) Normalize(ctx context.Context, in PlaceInput) (domain.Place, error) {
	if in.PlaceID != "" {
		place, err := n.resolve(ctx, "place:id:"+in.PlaceID, in.Text, func(c context.Context) (*domain.GeocodeResult, error) {
			return n.geocoder.PlaceDetails(c, in.PlaceID)
		})
		if err != nil || place != nil {
			return derefPlace(place), err
		}
	}

	if text := strings.TrimSpace(in.Text); text != "" {
		place, err := n.resolve(ctx, "place:text:"+keyword.NormalizeToken(text), in.Text, func(c context.Context) (*domain.GeocodeResult, error) {
			return n.geocoder.Geocode(c, text)
		})
		if err != nil || place != nil {
			return derefPlace(place), err
		}
	}

	return domain.EmptyPlace(in.Text), nil
}

// NormalizePair normalizes start and end concurrently; the first hard failure cancels the other.
func (n *PlaceNormalizer) NormalizePair(ctx context.Context, start, end PlaceInput) (domain.Place, domain.Place, error) {
	var startPlace, endPlace domain.Place

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := n.Normalize(gctx, start)
		startPlace = p
		return err
	})
	g.Go(func() error {
		p, err := n.Normalize(gctx, end)
		endPlace = p
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Place{}, domain.Place{}, err
	}
	return startPlace, endPlace, nil
}

func (n *PlaceNormalizer) resolve(
	ctx context.Context,
	cacheKey, text string,
	lookup func(context.Context) (*domain.GeocodeResult, error),
) (*domain.Place, error) {
	if cached := n.cached(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	res, err := lookup(callCtx)
	if err != nil {
		if hardFailure(ctx, callCtx, err) {
			n.logger.Error("Place lookup timed out", zap.String("key", cacheKey), zap.Error(err))
			return nil, err
		}
		n.logger.Warn("Place lookup failed, degrading", zap.String("key", cacheKey), zap.Error(err))
		return nil, nil
	}
	if res == nil {
		return nil, nil
	}

	place := placeFromResult(res, text)
	n.store(ctx, cacheKey, place)
	return &place, nil
}

func (n *PlaceNormalizer) cached(ctx context.Context, key string) *domain.Place {
	if n.cache == nil {
		return nil
	}
	place, err := n.cache.GetPlace(ctx, key)
	if err != nil {
		n.logger.Warn("Place cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return place
}

func (n *PlaceNormalizer) store(ctx context.Context, key string, place domain.Place) {
	if n.cache == nil {
		return
	}
	if err := n.cache.SetPlace(ctx, key, place, n.cacheTTL); err != nil {
		n.logger.Warn("Place cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func hardFailure(parent, call context.Context, err error) bool {
	if parent.Err() != nil || call.Err() != nil {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func derefPlace(p *domain.Place) domain.Place {
	if p == nil {
		return domain.Place{}
	}
	return *p
}

func placeFromResult(res *domain.GeocodeResult, text string) domain.Place {
	label := res.FormattedAddress
	if label == "" {
		label = text
	}
	return domain.Place{
		Label: label,
		Name:  res.Name,
		Admin: ExtractAdmin(res.Components),
		Lat:   res.Lat,
		Lng:   res.Lng,
	}
}

var sublocalityPrefixes = []string{
	"sublocality_level_1",
	"sublocality_level_2",
	"sublocality_level_3",
	"sublocality",
	"neighborhood",
}

// ExtractAdmin maps geocoder address components to the admin hierarchy.
// city: locality > postal_town > administrative_area_level_3 > administrative_area_level_2.
func ExtractAdmin(components []domain.AddressComponent) domain.Admin {
	first := func(t string) *domain.AddressComponent {
		for i := range components {
			for _, ct := range components[i].Types {
				if ct == t {
					return &components[i]
				}
			}
		}
		return nil
	}
	longName := func(types ...string) string {
		for _, t := range types {
			if c := first(t); c != nil && c.LongName != "" {
				return c.LongName
			}
		}
		return ""
	}

	subs := []string{}
	seen := map[string]bool{}
	for _, prefix := range sublocalityPrefixes {
		for _, c := range components {
			for _, ct := range c.Types {
				if strings.HasPrefix(ct, prefix) {
					if !seen[c.LongName] && c.LongName != "" {
						seen[c.LongName] = true
						subs = append(subs, c.LongName)
					}
					break
				}
			}
		}
	}

	admin := domain.Admin{
		Sublocalities: subs,
		City:          longName("locality", "postal_town", "administrative_area_level_3", "administrative_area_level_2"),
		District:      longName("administrative_area_level_2"),
		State:         longName("administrative_area_level_1"),
		Country:       longName("country"),
	}
	if c := first("country"); c != nil {
		admin.CountryCode = c.ShortName
	}
	return admin
}
