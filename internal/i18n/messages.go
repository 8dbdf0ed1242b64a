package i18n

var catalogue = map[string]map[string]string{
	English: {
		"nav.overview":       "Overview",
		"nav.restaurants":    "Restaurants",
		"nav.products":       "Products",
		"nav.categories":     "Categories",
		"nav.events":         "Events",
		"nav.party_requests": "Party Requests",
		"nav.addons":         "Addons",
		"nav.offers":         "Special Offers",
		"nav.riders":         "Riders",
		"nav.customers":      "Customers",
		"nav.orders":         "Orders",
		"nav.files":          "Files",
		"nav.content":        "Content",
		"nav.config":         "Configuration",

		"language.saved": "Language updated",
		"import.done":    "Import finished",
	},
	Italian: {
		"nav.overview":       "Panoramica",
		"nav.restaurants":    "Ristoranti",
		"nav.products":       "Prodotti",
		"nav.categories":     "Categorie",
		"nav.events":         "Eventi",
		"nav.party_requests": "Richieste Feste",
		"nav.addons":         "Extra",
		"nav.offers":         "Offerte Speciali",
		"nav.riders":         "Rider",
		"nav.customers":      "Clienti",
		"nav.orders":         "Ordini",
		"nav.files":          "File",
		"nav.content":        "Contenuti",
		"nav.config":         "Configurazione",

		"language.saved": "Lingua aggiornata",
		"import.done":    "Importazione completata",
	},
}

// T looks key up in lang, then in English; unknown keys are returned as is.
func T(lang, key string) string {
	if msg, ok := catalogue[lang][key]; ok {
		return msg
	}
	if msg, ok := catalogue[English][key]; ok {
		return msg
	}
	return key
}
