package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"asistencia/internal/domain"
	"asistencia/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendDocumentIssued(ctx context.Context, toEmail string, doc *domain.IssuedDocument, downloadURL string) error {
	subject := fmt.Sprintf("Formato de asistencia emitido (%d registros)", doc.RowCount)
	htmlBody := buildIssuedHTML(doc, downloadURL)
	textBody := buildIssuedText(doc, downloadURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildIssuedText(doc *domain.IssuedDocument, downloadURL string) string {
	return fmt.Sprintf("Se emitió un formato de asistencia domiciliaria.\n\n"+
		"Documento: %s\nRegistros: %d\nPáginas: %d\nFecha: %s\n\n"+
		"Descarga (enlace temporal):\n%s\n",
		doc.ID, doc.RowCount, doc.PageCount, doc.CreatedAt.Format("02/01/2006 15:04"), downloadURL)
}

func buildIssuedHTML(doc *domain.IssuedDocument, downloadURL string) string {
	link := html.EscapeString(downloadURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Formato de asistencia emitido</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Documento</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Registros</td><td>%d</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Páginas</td><td>%d</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Fecha</td><td>%s</td></tr>
  </table>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0F766E; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Descargar PDF</a>
  </p>
  <p style="color: #999; font-size: 12px;">El enlace de descarga es temporal.</p>
</body>
</html>`, doc.ID, doc.RowCount, doc.PageCount, doc.CreatedAt.Format("02/01/2006 15:04"), link)
}
