// Package i18n resolves UI strings by message code with per-language tables
// and fallback-to-default semantics. Supported languages: English ("en") and
// Urdu ("ur").
package i18n

import "strings"

const DefaultLang = "en"

var translations = map[string]map[string]string{
	"en": {
		"required":         "Required",
		"must_be_positive": "Must be a positive number",
		"out_of_range":     "Out of range",
		"name_required":    "Name cannot be empty",
		"job_empty":        "Add at least one measurement to a door before saving",
		"template_exists":  "A template with this name already exists",
		"unknown_language": "Unsupported language",
		"not_found":        "Not found",
		"invalid_json":     "Invalid request body",
		"saved":            "Saved",
		"updated":          "Updated",
		"deleted":          "Deleted",

		"invoice":         "INVOICE",
		"job_title":       "Job Title",
		"date":            "Date",
		"bill_to":         "Bill To",
		"work_summary":    "Work Summary",
		"cost_breakdown":  "Cost Breakdown",
		"item":            "Item",
		"rate":            "Rate",
		"total":           "Total",
		"subtotal":        "Subtotal",
		"grand_total":     "Grand Total",
		"notes":           "Notes",
		"door":            "Door",
		"valued_customer": "Valued Customer",
		"thank_you":       "Thank you for your business!",

		"area":    "Area",
		"beading": "Beading",
		"frame":   "Frame",
		"paling":  "Paling",
		"polish":  "Polish",
		"sq_ft":   "sq ft",
		"ft":      "ft",
	},
	"ur": {
		"required":         "درکار ہے",
		"must_be_positive": "مثبت عدد درکار ہے",
		"out_of_range":     "حد سے باہر",
		"name_required":    "نام خالی نہیں ہو سکتا",
		"job_empty":        "محفوظ کرنے سے پہلے کم از کم ایک پیمائش درج کریں",
		"template_exists":  "اس نام کا ٹیمپلیٹ پہلے سے موجود ہے",
		"unknown_language": "غیر معاون زبان",
		"not_found":        "نہیں ملا",
		"invalid_json":     "غلط درخواست",
		"saved":            "محفوظ ہو گیا",
		"updated":          "اپ ڈیٹ ہو گیا",
		"deleted":          "حذف ہو گیا",

		"invoice":         "انوائس",
		"job_title":       "کام کا عنوان",
		"date":            "تاریخ",
		"bill_to":         "بل برائے",
		"work_summary":    "کام کا خلاصہ",
		"cost_breakdown":  "لاگت کی تفصیل",
		"item":            "آئٹم",
		"rate":            "ریٹ",
		"total":           "کل",
		"subtotal":        "ذیلی میزان",
		"grand_total":     "کل میزان",
		"notes":           "نوٹس",
		"door":            "دروازہ",
		"valued_customer": "معزز گاہک",
		"thank_you":       "آپ کے کاروبار کا شکریہ!",

		"area":    "رقبہ",
		"beading": "بیڈنگ",
		"frame":   "چوکھٹ",
		"paling":  "پیلنگ",
		"polish":  "پالش",
		"sq_ft":   "مربع فٹ",
		"ft":      "فٹ",
	},
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// T resolves a message code for a language. Unknown languages fall back to
// the default language; unknown codes fall back to the code itself.
func T(lang, code string) string {
	if table, ok := translations[lang]; ok {
		if msg, ok := table[code]; ok {
			return msg
		}
	}
	if lang != DefaultLang {
		if msg, ok := translations[DefaultLang][code]; ok {
			return msg
		}
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header,
// defaulting to the default language.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if Supported(base) {
			return base
		}
	}
	return DefaultLang
}
