package gallery

import (
	"fmt"
	"html/template"
	"os"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
)

var galleryTemplate = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Odoo Contacts Gallery</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background: #f5f5f5;
        }
        h1 {
            color: #333;
            text-align: center;
            margin-bottom: 40px;
        }
        .gallery {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(250px, 1fr));
            gap: 20px;
        }
        .contact-card {
            background: white;
            border-radius: 8px;
            padding: 15px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            transition: transform 0.2s;
        }
        .contact-card:hover {
            transform: translateY(-5px);
            box-shadow: 0 4px 12px rgba(0,0,0,0.15);
        }
        .contact-image {
            width: 100%;
            height: auto;
            border-radius: 4px;
            margin-bottom: 10px;
        }
        .contact-name {
            font-weight: bold;
            color: #333;
            margin-bottom: 5px;
        }
        .contact-info {
            font-size: 0.9em;
            color: #666;
        }
        .no-image {
            width: 100px;
            height: 100px;
            background: #e0e0e0;
            display: flex;
            align-items: center;
            justify-content: center;
            border-radius: 4px;
            color: #999;
            font-size: 3em;
            margin: 0 auto 10px;
        }
    </style>
</head>
<body>
    <h1>Odoo Contacts Gallery</h1>
    <div class="gallery">
{{- range . }}
        <div class="contact-card">
            {{- if .ImageFile }}
            <img src="{{ .ImageFile }}" alt="{{ .Name }}" class="contact-image">
            {{- else }}
            <div class="no-image">&#128100;</div>
            {{- end }}
            <div class="contact-name">{{ .Name }}</div>
            <div class="contact-info">
                <div>RUT: {{ if .VAT }}{{ .VAT }}{{ else }}N/A{{ end }}</div>
                <div>Email: {{ if .Email }}{{ .Email }}{{ else }}N/A{{ end }}</div>
            </div>
        </div>
{{- end }}
    </div>
</body>
</html>
`))

// renderGallery writes the contact card grid to path.
func renderGallery(path string, contacts []Contact) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("cannot create gallery file: %v", err))
	}
	defer f.Close()

	if err := galleryTemplate.Execute(f, contacts); err != nil {
		return errors.NewConfigurationError(fmt.Sprintf("cannot render gallery: %v", err))
	}
	return nil
}
