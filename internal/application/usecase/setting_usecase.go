package usecase

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/Orcamentos-api/pkg/cnpj"
	"github.com/jhoicas/Orcamentos-api/pkg/validation"
)

type settingKind int

const (
	settingText settingKind = iota
	settingLongText
	settingEmail
	settingURL
	settingCNPJ
)

// settingKeys claves aceptadas en POST /api/settings.
var settingKeys = map[string]settingKind{
	"company_name":         settingText,
	"company_cnpj":         settingCNPJ,
	"company_contact":      settingText,
	"company_email":        settingEmail,
	"company_address":      settingText,
	"company_city":         settingText,
	"company_state":        settingText,
	"company_zip":          settingText,
	"company_phone":        settingText,
	"company_whatsapp":     settingText,
	"company_observations": settingLongText,
	"social_facebook":      settingURL,
	"social_instagram":     settingURL,
	"social_linkedin":      settingURL,
	"app_domain":           settingText,
}

const settingMaxLen = 255

// SettingKeys devuelve las claves válidas ordenadas.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingUseCase lectura y guardado de la configuración clave/valor.
type SettingUseCase struct {
	tx    ports.TxRunner
	repo  repository.SettingRepository
	cache ports.SettingsCache // opcional
	log   zerolog.Logger
}

// NewSettingUseCase construye el caso de uso. cache puede ser nil.
func NewSettingUseCase(repo repository.SettingRepository, tx ports.TxRunner, cache ports.SettingsCache, log zerolog.Logger) *SettingUseCase {
	return &SettingUseCase{tx: tx, repo: repo, cache: cache, log: log}
}

// GetAll devuelve la configuración actual (desde caché si está disponible).
func (uc *SettingUseCase) GetAll(ctx context.Context) (dto.SettingsResponse, error) {
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("settings: lectura de caché fallida")
		} else if ok {
			return cached, nil
		}
	}
	all, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = map[string]*string{}
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, all); err != nil {
			uc.log.Warn().Err(err).Msg("settings: escritura de caché fallida")
		}
	}
	return all, nil
}

// Save inserta o sobrescribe cada clave enviada en una transacción. Las demás no cambian.
func (uc *SettingUseCase) Save(ctx context.Context, in dto.SettingsRequest) (dto.SettingsResponse, error) {
	clean, err := validateSettings(in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		for _, k := range sortedKeys(clean) {
			if err := r.Settings.Upsert(ctx, k, clean[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("settings: invalidación de caché fallida")
		}
	}
	return uc.GetAll(ctx)
}

func validateSettings(in dto.SettingsRequest) (map[string]*string, error) {
	verr := &domain.ValidationError{}
	clean := make(map[string]*string, len(in))
	for k, v := range in {
		kind, ok := settingKeys[k]
		if !ok {
			verr.Add(k, "clave desconocida")
			continue
		}
		v = trimPtr(v)
		clean[k] = v
		if v == nil {
			continue
		}
		if kind != settingLongText && utf8.RuneCountInString(*v) > settingMaxLen {
			verr.Add(k, "no puede superar 255 caracteres")
			continue
		}
		switch kind {
		case settingEmail:
			if !validation.Var(*v, "email") {
				verr.Add(k, "debe ser un email válido")
			}
		case settingURL:
			if !validation.Var(*v, "http_url") {
				verr.Add(k, "debe ser una URL válida")
			}
		case settingCNPJ:
			if err := cnpj.Validate(*v); err != nil {
				verr.Add(k, "debe ser un CNPJ válido")
				continue
			}
			formatted := cnpj.Format(*v)
			clean[k] = &formatted
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return clean, nil
}

func sortedKeys(m map[string]*string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
