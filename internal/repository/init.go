package repository

import (
	"github.com/elastic/go-elasticsearch/v8"
)

type Repositories struct {
	DMARCReportRepository DMARCReportRepository
}

func InitRepositories(es *elasticsearch.Client, maxRecords int) *Repositories {
	return &Repositories{
		DMARCReportRepository: NewDMARCReportRepository(es, maxRecords),
	}
}
