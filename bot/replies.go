package bot

import "fmt"

// User-facing replies.
const (
	MsgRegistered          = "Cadastro realizado com sucesso! Pode me enviar a foto da sua primeira nota fiscal. 📸"
	MsgRegistrationFailed  = "Desculpe, houve um erro ao tentar cadastrar seu CPF. Por favor, tente novamente."
	MsgAskTaxID            = "Olá! Para que eu possa registrar suas notas, preciso do seu CPF. Por favor, me informe o seu CPF completo. ✍️"
	MsgAskTaxIDBeforePhoto = "Olá! Para que eu possa registrar suas notas, preciso do seu CPF. Por favor, me informe seu CPF antes de enviar a nota."
	MsgAskTaxIDGeneric     = "Olá! Para que eu possa registrar suas notas, preciso do seu CPF. Poderia me informar, por favor?"
	MsgWelcome             = "Olá! Envie uma foto de sua nota fiscal para que eu possa registrar seus gastos."
	MsgFallback            = "Não entendi a sua mensagem. Por favor, envie uma foto de sua nota fiscal."
	MsgDownloadFailed      = "Desculpe, não consegui baixar a sua imagem."
	MsgSaveFailed          = "Desculpe, não consegui salvar a imagem. Tente novamente mais tarde."
	MsgRecognizeFailed     = "Desculpe, não consegui ler a sua nota. Tente novamente mais tarde."
	MsgUnreadable          = "Não consegui encontrar as informações importantes na sua nota. Por favor, tente enviar uma foto mais nítida. 🧐"
)

// MsgExtracted confirms a read receipt back to the sender.
func MsgExtracted(total, date string) string {
	return fmt.Sprintf("Ótimo! Encontrei uma nota de R$%s de %s. Vou registrar seus gastos.", total, date)
}
