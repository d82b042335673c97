package miq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *RealClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRealClient(srv.URL, "admin", "smartvm")
}

func TestRealClient_SendsBasicAuthAndHeaders(t *testing.T) {
	var gotUser, gotPass, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"resources": []}`))
	})

	_, err := client.ListCollection(context.Background(), "providers")

	require.NoError(t, err)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "smartvm", gotPass)
	assert.Equal(t, "application/json", gotAccept)
}

func TestRealClient_ListCollection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/providers", r.URL.Path)
		assert.Equal(t, "resources", r.URL.Query().Get("expand"))
		_, _ = w.Write([]byte(`{"resources": [
			{"id": 266, "name": "openshift01"},
			{"id": "267", "name": "amazon01"}
		]}`))
	})

	refs, err := client.ListCollection(context.Background(), "providers")

	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, Ref{ID: 266, Name: "openshift01"}, refs[0])
	// Some server versions quote ids.
	assert.Equal(t, Ref{ID: 267, Name: "amazon01"}, refs[1])
}

func TestRealClient_GetProviderEndpoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/providers/266/", r.URL.Path)
		assert.Equal(t, "endpoints", r.URL.Query().Get("attributes"))
		_, _ = w.Write([]byte(`{
			"id": 266,
			"zone_id": 1,
			"provider_region": "",
			"endpoints": [
				{"role": "default", "hostname": "os01.example.com", "port": 8443},
				{"role": "hawkular", "hostname": "metrics.example.com", "port": 443}
			]
		}`))
	})

	eps, err := client.GetProviderEndpoints(context.Background(), 266)

	require.NoError(t, err)
	assert.Equal(t, ID(266), eps.ID)
	assert.Equal(t, ID(1), eps.ZoneID)
	require.Len(t, eps.Endpoints, 2)
	assert.Equal(t, "default", eps.Endpoints[0].Role)
	assert.Equal(t, 8443, eps.Endpoints[0].Port)
}

func TestRealClient_GetProviderAuthentications(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "authentications", r.URL.Query().Get("attributes"))
		_, _ = w.Write([]byte(`{
			"id": 266,
			"authentications": [
				{"authtype": "bearer", "status": "Valid", "last_valid_on": "2026-08-24T10:00:00Z"}
			]
		}`))
	})

	records, err := client.GetProviderAuthentications(context.Background(), 266)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bearer", records[0].AuthType)
	assert.Equal(t, "Valid", records[0].Status)
	assert.Equal(t, "2026-08-24T10:00:00Z", records[0].LastValidOn)
}

func TestRealClient_CreateProvider(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/providers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"results": [{"id": 266, "name": "openshift01"}]}`))
	})

	region := "us-east-1"
	id, err := client.CreateProvider(context.Background(), CreateProviderRequest{
		Name:           "openshift01",
		Type:           "ManageIQ::Providers::Openshift::ContainerManager",
		Zone:           Zone{ID: 1},
		ProviderRegion: &region,
		ConnectionConfigurations: []ConnectionConfiguration{{
			Endpoint:       Endpoint{Role: "default", Hostname: "os01.example.com", Port: 8443},
			Authentication: Authentication{AuthType: "bearer", AuthKey: "token"},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, ID(266), id)
	assert.Equal(t, "openshift01", body["name"])
	assert.Equal(t, "us-east-1", body["provider_region"])
	zone, ok := body["zone"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), zone["id"])
}

func TestRealClient_CreateProviderEmptyResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	_, err := client.CreateProvider(context.Background(), CreateProviderRequest{Name: "openshift01"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results")
}

func TestRealClient_EditProviderSendsEditAction(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/providers/266", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.EditProvider(context.Background(), 266, EditProviderRequest{Zone: Zone{ID: 1}})

	require.NoError(t, err)
	assert.Equal(t, "edit", body["action"])
	// Region unset posts an explicit null.
	v, present := body["provider_region"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestRealClient_DeleteProvider(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"success": true, "message": "Deleting ExtManagementSystem id:266", "task_id": "42"}`))
	})

	resp, err := client.DeleteProvider(context.Background(), 266)

	require.NoError(t, err)
	assert.Equal(t, "delete", body["action"])
	assert.True(t, resp.Success)
	assert.Equal(t, ID(42), resp.TaskID)
}

func TestRealClient_CustomAttributeRoundTrip(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			assert.Equal(t, "custom_attributes", r.URL.Query().Get("expand"))
			_, _ = w.Write([]byte(`{
				"custom_attributes": [
					{"id": 6226, "name": "ca1", "section": "metadata", "value": "value 1"}
				]
			}`))
		default:
			assert.Equal(t, "/api/providers/266/custom_attributes", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = w.Write([]byte(`{"results": [{"id": 6227, "name": "ca2", "section": "metadata", "value": "value 2"}]}`))
		}
	})

	list, err := client.ListCustomAttributes(context.Background(), "providers", 266)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ID(6226), list[0].ID)

	added, err := client.AddCustomAttributes(context.Background(), "providers", 266,
		[]CustomAttribute{{Name: "ca2", Section: "metadata", Value: "value 2"}})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "ca2", added[0].Name)
	assert.Equal(t, "add", body["action"])
}

func TestRealClient_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"kind": "bad_request", "message": "unknown zone"}}`))
	})

	_, err := client.ListCollection(context.Background(), "providers")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "unknown zone", apiErr.Message)
}

func TestRealClient_NotFoundPredicate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"message": "not found"}}`))
	})

	_, err := client.GetProviderEndpoints(context.Background(), 999)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestRealClient_UnauthorizedPredicate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`unauthorized`))
	})

	_, err := client.ListCollection(context.Background(), "providers")

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	// Non-JSON bodies fall back to the raw text.
	assert.Equal(t, "unauthorized", apiErr.Message)
}
