/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/acsgateway/pkg/acs"
	"github.com/carverauto/acsgateway/pkg/logger"
	"github.com/carverauto/acsgateway/pkg/models"
	"github.com/carverauto/acsgateway/pkg/tr069"
)

const (
	DefaultDistributionSample = 2000
	MaxDistributionSample     = 10000
	DefaultLastInforms        = 50
	MaxLastInforms            = 500

	noIP = "—"
)

// DeviceStore is the subset of the NBI client the inventory reads through.
type DeviceStore interface {
	FindDevices(ctx context.Context, q acs.DeviceQuery) ([]tr069.Document, error)
	Count(ctx context.Context, filter map[string]interface{}) (int, error)
	GetDevice(ctx context.Context, deviceID string) (tr069.Document, error)
}

var listProjection = []string{
	"_id", "_lastInform", "_tags",
	"InternetGatewayDevice.DeviceInfo",
	"Device.DeviceInfo",
	"InternetGatewayDevice.LANDevice.1.WLANConfiguration.1.SSID",
	"Device.WiFi.SSID.1.SSID",
	"InternetGatewayDevice.ManagementServer.ConnectionRequestURL",
	"Device.ManagementServer.ConnectionRequestURL",
	"Device.IP.Interface",
	"Device.LAN.IPAddress",
	"InternetGatewayDevice.WANDevice",
	"InternetGatewayDevice.LANDevice.1.LANHostConfigManagement",
}

var versionProjection = []string{
	"_id", "_lastInform",
	"InternetGatewayDevice.DeviceInfo.ProductClass",
	"InternetGatewayDevice.DeviceInfo.ModelName",
	"InternetGatewayDevice.DeviceInfo.SoftwareVersion",
	"Device.DeviceInfo.ProductClass",
	"Device.DeviceInfo.ModelName",
	"Device.DeviceInfo.SoftwareVersion",
}

// Service answers inventory reads.
type Service struct {
	store  DeviceStore
	logger logger.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store DeviceStore, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewTestLogger()
	}

	s := &Service{store: store, logger: log, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListItem is one row of the device list.
type ListItem struct {
	DeviceID        string   `json:"device_id"`
	SerialNumber    string   `json:"serial_number"`
	Vendor          string   `json:"vendor"`
	ProductClass    string   `json:"product_class"`
	SoftwareVersion string   `json:"software_version"`
	LastInform      string   `json:"last_inform"`
	Online          bool     `json:"online"`
	SSID            string   `json:"ssid"`
	IP              string   `json:"ip"`
	IPWAN           string   `json:"ip_wan"`
	IPLAN           string   `json:"ip_lan"`
	Subscriber      string   `json:"subscriber"`
	Tags            []string `json:"tags"`
}

// ListPage is a page of the device list.
type ListPage struct {
	GeneratedAt string     `json:"generated_at"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	Total       int        `json:"total"`
	TotalPages  int        `json:"total_pages"`
	Items       []ListItem `json:"items"`
	OnlineCut   string     `json:"online_cut"`
}

// List counts the matching devices, then fetches and reshapes one page.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListPage, error) {
	now := s.now().UTC()
	q := BuildListQuery(f, now)

	total, err := s.store.Count(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("count devices: %w", err)
	}

	docs, err := s.store.FindDevices(ctx, acs.DeviceQuery{
		Filter:     q.Filter,
		Projection: listProjection,
		Limit:      q.Limit,
		Skip:       q.Skip,
		Sort:       q.Sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	items := make([]ListItem, 0, len(docs))

	for _, doc := range docs {
		sum := tr069.Summarize(doc)

		item := ListItem{
			DeviceID:        sum.DeviceID,
			SerialNumber:    sum.SerialNumber,
			Vendor:          sum.Vendor,
			ProductClass:    sum.ProductClass,
			SoftwareVersion: sum.SoftwareVersion,
			LastInform:      sum.LastInform,
			Online:          onlineAt(sum.LastInform, q.OnlineCut),
			SSID:            tr069.ResolveString(doc, tr069.AttrSSID, 1),
			IP:              firstNonEmpty(sum.WANIPv4, sum.LANIPv4, noIP),
			IPWAN:           sum.WANIPv4,
			IPLAN:           sum.LANIPv4,
			Subscriber:      sum.Subscriber,
			Tags:            sum.Tags,
		}

		items = append(items, item)
	}

	s.logger.Debug().
		Int("total", total).
		Int("page", q.Page).
		Int("items", len(items)).
		Msg("Listed devices")

	return &ListPage{
		GeneratedAt: models.ISOTime(now),
		Page:        q.Page,
		PageSize:    q.Limit,
		Total:       total,
		TotalPages:  (total + q.Limit - 1) / q.Limit,
		Items:       items,
		OnlineCut:   models.ISOTime(q.OnlineCut),
	}, nil
}

// Detail is the normalized view of one device.
type Detail struct {
	DeviceID        string     `json:"device_id"`
	SerialNumber    string     `json:"serial_number"`
	Vendor          string     `json:"vendor"`
	ProductClass    string     `json:"product_class"`
	SoftwareVersion string     `json:"software_version"`
	LastInform      string     `json:"last_inform"`
	Online          bool       `json:"online"`
	Tags            []string   `json:"tags"`
	Subscriber      string     `json:"subscriber"`
	IP              DetailIP   `json:"ip"`
	WiFi            DetailWiFi `json:"wifi"`
	Mgmt            DetailMgmt `json:"mgmt"`
}

type DetailIP struct {
	WANIPv4 string `json:"wan_ipv4"`
	LANIPv4 string `json:"lan_ipv4"`
}

type DetailWiFi struct {
	SSID24 string `json:"ssid_24"`
	SSID5  string `json:"ssid_5"`
}

type DetailMgmt struct {
	ConnReqURL             string      `json:"conn_req_url"`
	STUNEnable             bool        `json:"stun_enable"`
	PeriodicInformInterval interface{} `json:"periodic_inform_interval"`
}

// Detail fetches and normalizes one device.
func (s *Service) Detail(ctx context.Context, deviceID string) (*Detail, error) {
	doc, err := s.store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	sum := tr069.Summarize(doc)
	if sum.DeviceID == "" {
		sum.DeviceID = deviceID
	}

	return &Detail{
		DeviceID:        sum.DeviceID,
		SerialNumber:    sum.SerialNumber,
		Vendor:          sum.Vendor,
		ProductClass:    sum.ProductClass,
		SoftwareVersion: sum.SoftwareVersion,
		LastInform:      sum.LastInform,
		Online:          IsOnline(sum.LastInform, s.now(), DefaultOnlineWindow),
		Tags:            sum.Tags,
		Subscriber:      sum.Subscriber,
		IP:              DetailIP{WANIPv4: sum.WANIPv4, LANIPv4: sum.LANIPv4},
		WiFi:            DetailWiFi{SSID24: sum.SSID24, SSID5: sum.SSID5},
		Mgmt: DetailMgmt{
			ConnReqURL:             sum.ConnectionRequestURL,
			STUNEnable:             sum.STUNEnable,
			PeriodicInformInterval: sum.PeriodicInformInterval,
		},
	}, nil
}

// Distribution counts product classes and software versions over a sample.
type Distribution struct {
	ProductClass    map[string]int `json:"product_class"`
	SoftwareVersion map[string]int `json:"software_version"`
	Sampled         int            `json:"sampled"`
}

// Distribution histograms the first sample devices. Missing values are
// counted under tr069.Unknown.
func (s *Service) Distribution(ctx context.Context, sample int) (*Distribution, error) {
	if sample <= 0 {
		sample = DefaultDistributionSample
	}

	sample = min(sample, MaxDistributionSample)

	docs, err := s.store.FindDevices(ctx, acs.DeviceQuery{Projection: versionProjection, Limit: sample})
	if err != nil {
		return nil, fmt.Errorf("sample devices: %w", err)
	}

	out := &Distribution{
		ProductClass:    map[string]int{},
		SoftwareVersion: map[string]int{},
		Sampled:         len(docs),
	}

	for _, doc := range docs {
		pc := firstNonEmpty(tr069.ResolveString(doc, tr069.AttrProductClass, 1), tr069.UnknownProductClass)
		sv := firstNonEmpty(tr069.ResolveString(doc, tr069.AttrSoftwareVersion, 1), tr069.UnknownSoftwareVersion)

		out.ProductClass[pc]++
		out.SoftwareVersion[sv]++
	}

	return out, nil
}

// RecentInform is one entry of the most recent informs.
type RecentInform struct {
	DeviceID        string `json:"device_id"`
	LastInform      string `json:"last_inform"`
	ProductClass    string `json:"product_class"`
	SoftwareVersion string `json:"software_version"`
}

// LastInforms returns the n devices that informed most recently.
func (s *Service) LastInforms(ctx context.Context, n int) ([]RecentInform, error) {
	if n <= 0 {
		n = DefaultLastInforms
	}

	n = min(n, MaxLastInforms)

	docs, err := s.store.FindDevices(ctx, acs.DeviceQuery{
		Projection: versionProjection,
		Limit:      n,
		Sort:       map[string]int{fieldLastInform: -1},
	})
	if err != nil {
		return nil, fmt.Errorf("recent informs: %w", err)
	}

	out := make([]RecentInform, 0, len(docs))

	for _, doc := range docs {
		out = append(out, RecentInform{
			DeviceID:        doc.ID(),
			LastInform:      doc.LastInform(),
			ProductClass:    tr069.ResolveString(doc, tr069.AttrProductClass, 1),
			SoftwareVersion: tr069.ResolveString(doc, tr069.AttrSoftwareVersion, 1),
		})
	}

	return out, nil
}

// ReadSSID resolves the SSID of a WLAN instance. The parameter is the path
// holding the value, or the write target when none does.
func (s *Service) ReadSSID(ctx context.Context, deviceID string, wlanIndex int) (*models.ParameterValue, error) {
	doc, err := s.store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	r := tr069.Resolve(doc, tr069.AttrSSID, wlanIndex)

	return &models.ParameterValue{Device: deviceID, Parameter: r.Path, Value: r.Value}, nil
}

// ReadValue extracts one scalar parameter.
func (s *Service) ReadValue(ctx context.Context, deviceID, name string) (*models.ParameterValue, error) {
	doc, err := s.store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	v, _ := tr069.Extract(doc, name)

	return &models.ParameterValue{Device: deviceID, Parameter: name, Value: v}, nil
}

// WiFiTargets resolves the SSID and passphrase paths for band.
func (s *Service) WiFiTargets(ctx context.Context, deviceID string, band tr069.Band) (tr069.WiFiTargets, error) {
	doc, err := s.store.GetDevice(ctx, deviceID)
	if err != nil {
		return tr069.WiFiTargets{}, err
	}

	return tr069.ResolveWiFi(doc, band), nil
}

// DeviceIDs lists every device id known to the ACS.
func (s *Service) DeviceIDs(ctx context.Context) ([]string, error) {
	docs, err := s.store.FindDevices(ctx, acs.DeviceQuery{Projection: []string{fieldID}})
	if err != nil {
		return nil, fmt.Errorf("list device ids: %w", err)
	}

	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		if id := doc.ID(); id != "" {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
