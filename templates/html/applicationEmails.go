package templates

import "fmt"

// RenderApplicationApprovedEmail is sent to a volunteer whose application was approved
func RenderApplicationApprovedEmail(volunteerName, actionTitle, notes, baseURL string) string {
	body := fmt.Sprintf(`<h2>Olá, %s!</h2>
      <p>Sua candidatura para a ação <strong>%s</strong> foi <strong>aprovada</strong>. A organização conta com você!</p>`,
		escape(volunteerName), escape(actionTitle))
	if notes != "" {
		body += fmt.Sprintf(`
      <div class="box"><h4>Recado da organização</h4><p>%s</p></div>`, escape(notes))
	}
	return layout("Candidatura aprovada", colorApproved, body, baseURL)
}

// RenderApplicationRejectedEmail is sent to a volunteer whose application was rejected
func RenderApplicationRejectedEmail(volunteerName, actionTitle, reason, baseURL string) string {
	body := fmt.Sprintf(`<h2>Olá, %s,</h2>
      <p>Agradecemos seu interesse na ação <strong>%s</strong>. Infelizmente sua candidatura não foi aprovada desta vez.</p>
      <div class="box"><h4>Motivo</h4><p>%s</p></div>
      <p>Existem muitas outras ações esperando por você.</p>`,
		escape(volunteerName), escape(actionTitle), escape(reason))
	return layout("Atualização da candidatura", colorRejected, body, baseURL)
}

// RenderApplicationCompletedEmail thanks a volunteer after their participation is marked complete
func RenderApplicationCompletedEmail(volunteerName, actionTitle, feedback, baseURL string) string {
	body := fmt.Sprintf(`<h2>Obrigado, %s!</h2>
      <p>Sua participação na ação <strong>%s</strong> foi concluída.</p>`,
		escape(volunteerName), escape(actionTitle))
	if feedback != "" {
		body += fmt.Sprintf(`
      <div class="box"><h4>Avaliação da organização</h4><p>%s</p></div>`, escape(feedback))
	}
	return layout("Participação concluída", colorCompleted, body, baseURL)
}
