package jsonbin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/jsonbin"
)

func TestClient_LeerDesenvuelveRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/b/bin123/latest", r.URL.Path)
		assert.Equal(t, "clave-maestra", r.Header.Get("X-Master-Key"))
		_, _ = w.Write([]byte(`{"record": [{"id": 1, "nombre": "ACME SRL", "documento": "30712345678"}], "metadata": {}}`))
	}))
	defer srv.Close()

	cli := jsonbin.NewClient(srv.URL, "clave-maestra", 2*time.Second)

	var clientes []entity.Cliente
	require.NoError(t, cli.Leer(context.Background(), "bin123", &clientes))
	require.Len(t, clientes, 1)
	assert.Equal(t, int64(1), clientes[0].ID)
	assert.Equal(t, "ACME SRL", clientes[0].Nombre)
}

func TestClient_GuardarHacePut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/b/bin123", r.URL.Path)
		var body []entity.Cliente
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body, 2)
		_, _ = w.Write([]byte(`{"record": {}, "metadata": {}}`))
	}))
	defer srv.Close()

	cli := jsonbin.NewClient(srv.URL, "clave-maestra", 2*time.Second)
	err := cli.Guardar(context.Background(), "bin123", []entity.Cliente{
		{ID: 1, Nombre: "ACME SRL"},
		{ID: 2, Nombre: "Otro"},
	})
	require.NoError(t, err)
}

// Con el remoto caído, GetAll degrada a la última lectura buena.
func TestPlantillaRepo_DegradaACache(t *testing.T) {
	var caido atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if caido.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"record": [{"id": 7, "clienteId": 1, "concepto": "Abono", "monto": 100, "selected": true}]}`))
	}))
	defer srv.Close()

	repo := jsonbin.NewPlantillaRepo(jsonbin.NewClient(srv.URL, "k", 2*time.Second), "binT")

	plantillas, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, plantillas, 1)

	caido.Store(true)
	plantillas, err = repo.GetAll(context.Background())
	require.NoError(t, err, "con caché cargada una falla remota no es error")
	require.Len(t, plantillas, 1)
	assert.Equal(t, int64(7), plantillas[0].ID)
}

// Sin caché previa, la falla remota sí se propaga.
func TestClienteRepo_SinCachePropagaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	repo := jsonbin.NewClienteRepo(jsonbin.NewClient(srv.URL, "k", 2*time.Second), "binC")
	_, err := repo.GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
}
