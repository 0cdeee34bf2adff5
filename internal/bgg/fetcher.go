package bgg

import (
	"fmt"

	"bgmix/internal/bgg/interfaces"
	"bgmix/internal/providers"
	"bgmix/internal/structures"
)

// NewFetcher selects the collection source configured under bgg.source.
func NewFetcher(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.FetcherInterface, error) {
	switch conf.BGG.Source {
	case sourceXML:
		return NewXMLClient(conf, logger, metrics), nil
	case sourceGraphQL:
		return NewGraphQLClient(conf, logger, metrics), nil
	default:
		return nil, fmt.Errorf("unknown bgg source %q", conf.BGG.Source)
	}
}
