package utils

import (
	"net/url"
	"strings"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
)

const (
	mapsSearchURL  = "https://www.google.com/maps/search/?api=1&query="
	whatsappURL    = "https://wa.me/?text="
	outlookURL     = "https://outlook.live.com/mail/0/deeplink/compose"
	shareSubject   = "CEP encontrado"
	defaultCountry = "Brasil"
)

// ShareLinks reúne os links de compartilhamento de um endereço
type ShareLinks struct {
	Text     string `json:"texto"`
	Maps     string `json:"mapa"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	Outlook  string `json:"outlook"`
}

// encodeComponent escapa como o encodeURIComponent dos navegadores (espaço vira %20)
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ShareText monta o texto compartilhado de um endereço
// Exemplo: "Endereço encontrado:\nRua 8, Centro\nCEP: 14790-000"
func ShareText(rec models.AddressRecord) string {
	return "Endereço encontrado:\n" + rec.Street + ", " + rec.Neighborhood + "\nCEP: " + FormatCEP(rec.PostalCode)
}

// MapsURL gera a busca do endereço no Google Maps. Cidade e UF do registro têm
// precedência sobre os valores padrão.
func MapsURL(rec models.AddressRecord, defaultCity, defaultUF string) string {
	city := firstNonEmpty(rec.Locality, defaultCity)
	uf := firstNonEmpty(rec.Region, defaultUF)

	parts := []string{"CEP " + FormatCEP(rec.PostalCode), rec.Street, rec.Neighborhood, city, uf, defaultCountry}
	return mapsSearchURL + encodeComponent(strings.Join(parts, ", "))
}

// BuildShareLinks gera todos os links de compartilhamento de um endereço
func BuildShareLinks(rec models.AddressRecord, defaultCity, defaultUF string) ShareLinks {
	text := ShareText(rec)
	mail := "?subject=" + encodeComponent(shareSubject) + "&body=" + encodeComponent(text)

	return ShareLinks{
		Text:     text,
		Maps:     MapsURL(rec, defaultCity, defaultUF),
		WhatsApp: whatsappURL + encodeComponent(text),
		Email:    "mailto:" + mail,
		Outlook:  outlookURL + mail,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
