package database

import (
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/pkg/errors"
)

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

func NewElasticConnection(esConfig *ElasticsearchConfig) (*elasticsearch.Client, error) {
	validateConfig(esConfig)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: esConfig.Addresses,
		Username:  esConfig.Username,
		Password:  esConfig.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create elasticsearch client")
	}

	// The client is lazy; reachability problems surface on the first
	// query, where the caller degrades them to an empty result.
	return client, nil
}

func validateConfig(config *ElasticsearchConfig) {
	switch {
	case config == nil:
		log.Fatalf("Elasticsearch config is nil")
	case len(config.Addresses) == 0:
		log.Fatalf("Elasticsearch addresses config is empty")
	}
}
