package utils

import (
	"fmt"

	"electroyard_back_end/internal/models"
)

// statusSubjects et statusBodies : un message par statut déclencheur.
// Seuls shipped, delivered et cancelled donnent lieu à un e-mail.
var statusSubjects = map[string]string{
	models.FulfillmentShipped:   "📦 Votre commande a été expédiée",
	models.FulfillmentDelivered: "✅ Votre commande a été livrée",
	models.FulfillmentCancelled: "❌ Votre commande a été annulée",
}

var statusBodies = map[string]string{
	models.FulfillmentShipped: `
		<p>Bonjour %s,</p>
		<p>Bonne nouvelle : votre commande <strong>n°%s</strong> a été <strong>expédiée</strong> et est en route vers l'adresse indiquée.</p>
		<p>Vous recevrez une nouvelle notification dès que votre commande sera livrée.</p>`,
	models.FulfillmentDelivered: `
		<p>Bonjour %s,</p>
		<p>Votre commande <strong>n°%s</strong> a été <strong>livrée</strong> avec succès.</p>
		<p>Nous espérons que votre achat vous donnera entière satisfaction. N'hésitez pas à nous faire part de vos retours.</p>`,
	models.FulfillmentCancelled: `
		<p>Bonjour %s,</p>
		<p>Nous sommes au regret de vous informer que votre commande <strong>n°%s</strong> a été <strong>annulée</strong>.</p>
		<p>Si cette annulation vous semble inattendue, contactez notre support : nous sommes là pour vous aider.</p>`,
}

// HasStatusEmail indique si un statut déclenche un e-mail client.
func HasStatusEmail(status string) bool {
	_, ok := statusSubjects[status]
	return ok
}

// GenerateOrderStatusHTML génère le corps HTML de l'e-mail de changement
// de statut pour une commande.
func GenerateOrderStatusHTML(order models.Order, status string) (subject, html string) {
	subject = statusSubjects[status]
	body := fmt.Sprintf(statusBodies[status], order.FirstName, order.ID.Hex())

	html = fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">%s</h2>
		%s
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe ElectroYard</strong>
		</p>
	</div>
</body>
</html>`, subject, subject, body)

	return subject, html
}
