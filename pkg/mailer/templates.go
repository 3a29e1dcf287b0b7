package mailer

// Template identifiers used by the contest flows.
const (
	TemplateValidate = "validate"
	TemplateGiftCode = "gift_code"
)

type emailTemplate struct {
	subject string
	text    string
	html    string
}

// The real presentation lives with the frontend team; these bodies only
// need to carry the link or code and stay legible in a plain text client.
var templates = map[string]emailTemplate{
	TemplateValidate: {
		subject: "Confirm your email{{if .IsWinner}} to claim your prize{{end}}",
		text: `Hi {{.FirstName}},

{{if .IsWinner}}You won! {{end}}Click the link below to confirm your school email address:

{{.LinkURL}}

- The Voter Bowl team`,
		html: `<p>Hi {{.FirstName}},</p>
{{if .IsWinner}}<p>You won!</p>{{end}}
<p><a href="{{.LinkURL}}">{{.ButtonText}}</a></p>
<p>- The Voter Bowl team</p>`,
	},
	TemplateGiftCode: {
		subject: "Your ${{.AmountWon}} gift card from the Voter Bowl",
		text: `Hi {{.FirstName}},

Congrats! Here is your ${{.AmountWon}} gift card claim code:

{{.ClaimCode}}

Redeem it at https://www.amazon.com/gc/redeem

- The Voter Bowl team`,
		html: `<p>Hi {{.FirstName}},</p>
<p>Congrats! Here is your ${{.AmountWon}} gift card claim code:</p>
<p><b>{{.ClaimCode}}</b></p>
<p>Redeem it at <a href="https://www.amazon.com/gc/redeem">amazon.com/gc/redeem</a>.</p>
<p>- The Voter Bowl team</p>`,
	},
}
