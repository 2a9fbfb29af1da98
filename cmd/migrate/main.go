// Comando migrate aplica las migraciones SQL embebidas.
//
//	migrate up        aplica todas las pendientes
//	migrate down [n]  revierte n migraciones (1 por defecto)
//	migrate version   muestra la versión actual
package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/Orcamentos-api/migrations"
	"github.com/jhoicas/Orcamentos-api/pkg/config"
	"github.com/jhoicas/Orcamentos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal().Err(err).Msg("leer migraciones embebidas")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migrate")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil || steps < 1 {
				log.Fatal().Str("arg", os.Args[2]).Msg("down espera un número positivo")
			}
		}
		err = m.Steps(-steps)
	case "version":
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info().Msg("sin migraciones aplicadas")
			return
		}
		if verr != nil {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		return
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up | down [n] | version)")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
	log.Info().Str("cmd", cmd).Msg("migraciones al día")
}
