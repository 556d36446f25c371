package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// GeocodeService proxies reverse geocoding to the Yandex geocoder so the
// frontend can label a picked start point with a street address.
type GeocodeService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGeocodeService(apiKey string) *GeocodeService {
	return &GeocodeService{
		baseURL: "https://geocode-maps.yandex.ru/1.x/",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseGeocode returns a human-readable address for the coordinate, or an
// empty string when the geocoder has nothing for it.
func (s *GeocodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if s.apiKey == "" {
		return "", ErrGeocoderUnavailable
	}

	params := url.Values{}
	params.Set("apikey", s.apiKey)
	params.Set("format", "json")
	params.Set("geocode", fmt.Sprintf("%f,%f", lon, lat))
	params.Set("kind", "house")
	params.Set("results", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "heritage-routes")

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("reverse geocode request failed")
		return "", ErrGeocoderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("reverse geocode bad status")
		return "", ErrGeocoderUnavailable
	}

	var parsed struct {
		Response struct {
			GeoObjectCollection struct {
				FeatureMember []struct {
					GeoObject struct {
						MetaDataProperty struct {
							GeocoderMetaData struct {
								Text string `json:"text"`
							} `json:"GeocoderMetaData"`
						} `json:"metaDataProperty"`
					} `json:"GeoObject"`
				} `json:"featureMember"`
			} `json:"GeoObjectCollection"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", ErrGeocoderUnavailable
	}

	members := parsed.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return "", nil
	}
	return members[0].GeoObject.MetaDataProperty.GeocoderMetaData.Text, nil
}
