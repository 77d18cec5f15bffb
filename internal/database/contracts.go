package database

import "cestas/internal/service"

var (
	_ service.ComandaStore    = (*Store)(nil)
	_ service.SurveyStore     = (*Store)(nil)
	_ service.ResponseStore   = (*Store)(nil)
	_ service.LinkStore       = (*Store)(nil)
	_ service.PreCheckInStore = (*Store)(nil)
	_ service.StockStore      = (*Store)(nil)
	_ service.CabinStore      = (*Store)(nil)
	_ service.LocationStore   = (*Store)(nil)
	_ service.SettingsStore   = (*Store)(nil)
	_ service.AdminStore      = (*Store)(nil)
)
