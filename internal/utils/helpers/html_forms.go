package helpers

import (
	"fmt"
	"html"
)

func BuildSimpleHTML(title, body string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#1f8a70; margin-top:0;">%s</h2>
                <div style="font-size:16px; color:#222;">%s</div>
                <hr style="margin:32px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">Mensagem automática do Mapify. Não responda.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, html.EscapeString(title), body)
}

func BuildPasswordResetHTML(resetLink string, validMinutes int) string {
	link := html.EscapeString(resetLink)
	body := fmt.Sprintf(`
      <p>Recebemos um pedido para redefinir a sua senha.</p>
      <p><a href="%s" style="display:inline-block;padding:12px 24px;background:#1f8a70;color:#fff;text-decoration:none;border-radius:6px;font-weight:600;">Redefinir senha</a></p>
      <p style="font-size:13px;color:#555;">O link é válido por %d minutos. Se você não pediu a redefinição, ignore este e-mail.</p>
      <p style="font-size:12px;color:#999;margin-top:16px;">Se o botão não funcionar, copie o link: %s</p>
    `, link, validMinutes, link)
	return BuildSimpleHTML("Redefinição de senha", body)
}
