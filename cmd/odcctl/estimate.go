package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/infrastructure/googlemaps"
	"github.com/odc-estimate/internal/infrastructure/mapbox"
	"github.com/odc-estimate/internal/pkg/keyword"
	"github.com/odc-estimate/internal/pkg/validator"
	"github.com/odc-estimate/internal/repository/cache"
	"github.com/odc-estimate/internal/repository/postgres"
	"github.com/odc-estimate/internal/usecase"
	"github.com/odc-estimate/internal/usecase/dto"
)

var estimateReq dto.EstimateRequest

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the cost of a route",
	Long:  "Runs the full estimate pipeline (normalize, match, price, distance) against the configured database and maps provider and prints the result as JSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := validator.Validate(&estimateReq); err != nil {
			return eris.Wrapf(err, "invalid request, fields %v", validator.FieldNames(err))
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := zap.L()

		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			return eris.Wrap(err, "connect to database")
		}
		defer db.Close()

		// кеш мест не обязателен для разового запуска
		var placeCache repository.CacheRepository
		if redisClient, err := cache.NewRedis(&cfg.Redis, log); err != nil {
			log.Warn("Redis unavailable, running without place cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			placeCache = cache.NewCacheRepository(redisClient)
		}

		routeRepo := postgres.NewRouteRepository(db)
		google := googlemaps.NewClient(&cfg.Google, log)

		var distance repository.DistanceProvider = google
		if cfg.Google.DistanceProvider == "mapbox" {
			distance = mapbox.NewMapboxClient(&cfg.Mapbox, log)
		}

		uc := usecase.NewEstimateUseCase(
			usecase.NewPlaceNormalizer(google, placeCache, log, cfg.Google.RequestTimeout, cfg.Cache.PlaceCacheTTL),
			keyword.NewBuilder(nil),
			usecase.NewRouteMatcher(routeRepo, log),
			usecase.NewPricingResolver(routeRepo, log),
			usecase.NewDistanceCalculator(distance, log),
			routeRepo,
			log,
		)

		result, err := uc.Estimate(cmd.Context(), estimateReq)
		if err != nil {
			return eris.Wrap(err, "estimate")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	f := estimateCmd.Flags()
	f.StringVar(&estimateReq.Start, "start", "", "start location text")
	f.StringVar(&estimateReq.End, "end", "", "end location text")
	f.StringVar(&estimateReq.StartPlaceID, "start-place-id", "", "Google place id of the start")
	f.StringVar(&estimateReq.EndPlaceID, "end-place-id", "", "Google place id of the end")
	f.StringVar(&estimateReq.Height, "height", "", "height band, e.g. \"4 - 4.5m\"")
	f.StringVar(&estimateReq.Length, "length", "", "length band, e.g. \"12m\"")
	f.StringVar(&estimateReq.Width, "width", "", "width band, e.g. \"3m\"")
	f.StringVar(&estimateReq.Weight, "weight", "", "weight band, e.g. \"<50 tons\"")
	rootCmd.AddCommand(estimateCmd)
}
