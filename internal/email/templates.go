package email

import (
	"html/template"
	"strings"
)

var welcomeTpl = template.Must(template.New("welcome").Parse(`
<h2>Olá, {{.StudentName}}!</h2>
<p>Seu treinador {{.TrainerName}} criou uma conta para você no TreinAí.</p>
<p>Entre com seu email e a senha temporária abaixo:</p>
<p><strong>{{.TempPassword}}</strong></p>
<p>Recomendamos trocar a senha no primeiro acesso.</p>
`))

var deactivationTpl = template.Must(template.New("deactivation").Parse(`
<h2>Olá, {{.StudentName}}.</h2>
<p>Sua conta no TreinAí foi desativada pelo seu treinador.</p>
<p>Se você acredita que isso foi um engano, fale com ele diretamente.</p>
`))

func renderWelcome(studentName, trainerName, tempPassword string) (string, error) {
	var buf strings.Builder
	err := welcomeTpl.Execute(&buf, map[string]string{
		"StudentName":  studentName,
		"TrainerName":  trainerName,
		"TempPassword": tempPassword,
	})
	return buf.String(), err
}

func renderDeactivation(studentName string) (string, error) {
	var buf strings.Builder
	err := deactivationTpl.Execute(&buf, map[string]string{
		"StudentName": studentName,
	})
	return buf.String(), err
}
