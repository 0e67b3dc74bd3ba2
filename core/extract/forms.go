// ABOUTME: Form extraction and purpose classification
// ABOUTME: Classifies search/login/registration/contact/newsletter forms by attribute keywords

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"navassist-api/core/domain"
)

// formPurposes map attribute keywords to a classified purpose, checked in order.
var formPurposes = []struct {
	purpose string
	terms   []string
}{
	{"search", []string{"search", "find"}},
	{"login", []string{"login", "signin", "log-in", "sign-in"}},
	{"registration", []string{"register", "signup", "sign-up", "create-account"}},
	{"contact", []string{"contact", "feedback", "message"}},
	{"newsletter", []string{"newsletter", "subscribe"}},
}

// extractForms enumerates every form with its classified purpose and its
// non-submit fields.
func extractForms(doc *goquery.Document) []domain.Form {
	var forms []domain.Form

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		method := strings.ToUpper(form.AttrOr("method", "get"))

		info := domain.Form{
			Action:  form.AttrOr("action", ""),
			Method:  method,
			Purpose: classifyFormPurpose(form),
			Fields:  []domain.FormField{},
		}

		form.Find("input, select, textarea").Each(func(_ int, field *goquery.Selection) {
			tag := goquery.NodeName(field)
			fieldType := tag
			if tag == "input" {
				fieldType = field.AttrOr("type", "text")
				switch fieldType {
				case "submit", "button", "image", "reset":
					return
				}
			}

			_, required := field.Attr("required")
			fieldInfo := domain.FormField{
				Type:        fieldType,
				Name:        field.AttrOr("name", ""),
				Placeholder: field.AttrOr("placeholder", ""),
				Required:    required,
			}

			if tag == "select" {
				field.Find("option").Each(func(_ int, opt *goquery.Selection) {
					fieldInfo.Options = append(fieldInfo.Options, strings.TrimSpace(opt.Text()))
				})
			}

			info.Fields = append(info.Fields, fieldInfo)
		})

		forms = append(forms, info)
	})

	return forms
}

func classifyFormPurpose(form *goquery.Selection) string {
	attrs := strings.ToLower(strings.Join([]string{
		form.AttrOr("id", ""),
		form.AttrOr("class", ""),
		form.AttrOr("name", ""),
	}, " "))

	for _, candidate := range formPurposes {
		for _, term := range candidate.terms {
			if strings.Contains(attrs, term) {
				return candidate.purpose
			}
		}
	}
	return "unknown"
}
