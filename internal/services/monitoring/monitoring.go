// Package monitoring проксирует запрос метрик к внешнему аналитическому
// GraphQL API и приводит ответ к компактному снимку для дашборда.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/asppibra-dao/core-api/internal/config"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
)

// ErrNotConfigured возвращается, если учетные данные аналитики не заданы.
var ErrNotConfigured = errors.New("analytics configuration incomplete")

// UpstreamError несёт текст ошибки внешнего API: он попадает в поле errors
// конверта ответа, сам статус всегда 500.
type UpstreamError struct {
	Details string
}

func (e *UpstreamError) Error() string {
	return "analytics API error: " + e.Details
}

const snapshotCacheKey = "monitoring:snapshot"

// Snapshot — приведённый снимок метрик за последние сутки.
type Snapshot struct {
	Requests   int64          `json:"requests"`
	Bytes      int64          `json:"bytes"`
	CacheRatio string         `json:"cacheRatio"`
	DBReads    int64          `json:"dbReads"`
	DBWrites   int64          `json:"dbWrites"`
	Countries  []CountryCount `json:"countries"`
}

// CountryCount — количество запросов из страны.
type CountryCount struct {
	Code  string `json:"code"`
	Count int64  `json:"count"`
}

// Cache описывает используемое подмножество кэша.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service выполняет запрос к аналитическому API с ограниченным таймаутом
// и кэширует снимок, чтобы не дёргать провайдера на каждый опрос дашборда.
type Service struct {
	cfg        config.Analytics
	httpClient *http.Client
	cache      Cache
	log        *slog.Logger
}

// New создает новый экземпляр Service. cache может быть nil.
func New(cfg config.Analytics, cache Cache, log *slog.Logger) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		log:        log,
	}
}

// Fetch возвращает снимок метрик: из кэша, если он свежий, иначе от провайдера.
func (s *Service) Fetch(ctx context.Context) (*Snapshot, error) {
	const op = "services.monitoring.Fetch"

	if s.cfg.AccountID == "" || s.cfg.ZoneID == "" || s.cfg.APIToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	if s.cache != nil {
		var cached Snapshot
		found, err := s.cache.Get(ctx, snapshotCacheKey, &cached)
		if err != nil {
			s.log.Warn("cache read failed", sl.Err(err))
		} else if found {
			return &cached, nil
		}
	}

	snapshot, err := s.query(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		ttl := s.cfg.CacheTTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		if err := s.cache.Set(ctx, snapshotCacheKey, snapshot, ttl); err != nil {
			s.log.Warn("cache write failed", sl.Err(err))
		}
	}
	return snapshot, nil
}

type graphqlResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Data struct {
		Viewer struct {
			Accounts []struct {
				D1 []struct {
					Sum struct {
						ReadQueries  int64 `json:"readQueries"`
						WriteQueries int64 `json:"writeQueries"`
					} `json:"sum"`
				} `json:"d1"`
			} `json:"accounts"`
			Zones []struct {
				Traffic []struct {
					Count int64 `json:"count"`
					Sum   struct {
						EdgeResponseBytes int64 `json:"edgeResponseBytes"`
					} `json:"sum"`
				} `json:"traffic"`
				Cache []struct {
					Count      int64 `json:"count"`
					Dimensions struct {
						CacheStatus string `json:"cacheStatus"`
					} `json:"dimensions"`
				} `json:"cache"`
				Countries []struct {
					Count      int64 `json:"count"`
					Dimensions struct {
						ClientCountryName string `json:"clientCountryName"`
					} `json:"dimensions"`
				} `json:"countries"`
			} `json:"zones"`
		} `json:"viewer"`
	} `json:"data"`
}

func (s *Service) query(ctx context.Context) (*Snapshot, error) {
	now := time.Now().UTC()
	isoStart := now.Add(-24 * time.Hour).Format(time.RFC3339)
	isoEnd := now.Format(time.RFC3339)
	dateStart := now.Add(-24 * time.Hour).Format("2006-01-02")

	query := fmt.Sprintf(`
		query {
			viewer {
				accounts(filter: { accountTag: %q }) {
					d1: d1AnalyticsAdaptiveGroups(limit: 1, filter: { date_geq: %q }) {
						sum { readQueries, writeQueries }
					}
				}
				zones(filter: { zoneTag: %q }) {
					traffic: httpRequestsAdaptiveGroups(limit: 1, filter: { datetime_geq: %q, datetime_lt: %q }) {
						count
						sum { edgeResponseBytes }
					}
					cache: httpRequestsAdaptiveGroups(limit: 5, filter: { datetime_geq: %q, datetime_lt: %q }, orderBy: [count_DESC]) {
						count
						dimensions { cacheStatus }
					}
					countries: httpRequestsAdaptiveGroups(limit: 5, filter: { datetime_geq: %q, datetime_lt: %q }, orderBy: [count_DESC]) {
						count
						dimensions { clientCountryName }
					}
				}
			}
		}`,
		s.cfg.AccountID, dateStart, s.cfg.ZoneID,
		isoStart, isoEnd, isoStart, isoEnd, isoStart, isoEnd)

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Details: "unexpected status: " + resp.Status}
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, err
	}
	if len(gqlResp.Errors) > 0 {
		return nil, &UpstreamError{Details: gqlResp.Errors[0].Message}
	}

	return reshape(&gqlResp), nil
}

// reshape сводит сырые группы GraphQL-ответа к снимку дашборда.
func reshape(gqlResp *graphqlResponse) *Snapshot {
	snapshot := &Snapshot{CacheRatio: "0"}

	if accounts := gqlResp.Data.Viewer.Accounts; len(accounts) > 0 && len(accounts[0].D1) > 0 {
		snapshot.DBReads = accounts[0].D1[0].Sum.ReadQueries
		snapshot.DBWrites = accounts[0].D1[0].Sum.WriteQueries
	}

	zones := gqlResp.Data.Viewer.Zones
	if len(zones) == 0 {
		return snapshot
	}
	zone := zones[0]

	if len(zone.Traffic) > 0 {
		snapshot.Requests = zone.Traffic[0].Count
		snapshot.Bytes = zone.Traffic[0].Sum.EdgeResponseBytes
	}

	hitStatuses := []string{"hit", "revalidated"}
	var total, hits int64
	for _, group := range zone.Cache {
		total += group.Count
		if slices.Contains(hitStatuses, group.Dimensions.CacheStatus) {
			hits += group.Count
		}
	}
	if total > 0 {
		snapshot.CacheRatio = fmt.Sprintf("%.0f", float64(hits)/float64(total)*100)
	}

	for _, group := range zone.Countries {
		snapshot.Countries = append(snapshot.Countries, CountryCount{
			Code:  group.Dimensions.ClientCountryName,
			Count: group.Count,
		})
	}
	return snapshot
}
