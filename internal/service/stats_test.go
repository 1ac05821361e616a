package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dashboard-service/internal/entity"
)

func TestWorkersDashboard(t *testing.T) {
	records := []entity.Record{
		{"puesto": "Mesero", "curp": true, "ine": true, "acta_nacimiento": true},
		{"puesto": "Cocinero", "curp": true, "ine": false, "acta_nacimiento": true},
		{"puesto": "Mesero"},
		{"puesto": "", "curp": true, "ine": true, "acta_nacimiento": true},
	}

	stats := WorkersDashboard(records)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 4, stats.Active)
	require.Equal(t, "Mesero", stats.TopPosition)
	require.Equal(t, 2, stats.DocumentsComplete)
}

func TestWorkersDashboardTieBreaksByFirstAppearance(t *testing.T) {
	records := []entity.Record{
		{"puesto": "Cocinero"},
		{"puesto": "Mesero"},
		{"puesto": "Mesero"},
		{"puesto": "Cocinero"},
	}
	require.Equal(t, "Cocinero", WorkersDashboard(records).TopPosition)
}

func TestWorkersDashboardEmpty(t *testing.T) {
	stats := WorkersDashboard(nil)
	require.Equal(t, 0, stats.Total)
	require.Equal(t, "", stats.TopPosition)
}

func TestMenuDashboard(t *testing.T) {
	records := []entity.Record{
		{"nombre_m": "Taco de Pastor", "precio": 15.0, "chorizo_argentino": true},
		{"nombre_m": "Quesadilla", "precio": 20.0},
		{"nombre_m": "Torta de Cecina", "precio": 55.5, "cecina": true},
	}

	stats := MenuDashboard(records)
	require.Equal(t, 3, stats.Total)
	require.True(t, stats.AveragePrice.Equal(decimal.RequireFromString("30.17")))
	require.Equal(t, "Taco de Pastor", stats.MostPopular)
	require.Equal(t, 2, stats.Specialties)
}

func TestMenuDashboardEmpty(t *testing.T) {
	stats := MenuDashboard(nil)
	require.Equal(t, 0, stats.Total)
	require.True(t, stats.AveragePrice.IsZero())
	require.Equal(t, "", stats.MostPopular)
}
