package i18n

// ptBR maps English messages to Brazilian Portuguese.
var ptBR = map[string]string{
	// registration
	"You cannot register for your own event.":          "Você não pode se inscrever no seu próprio evento.",
	"Maximum capacity reached for this event.":         "Capacidade máxima atingida para este evento.",
	"This email is already registered for this event.": "Este e-mail já está inscrito neste evento.",
	"Registration successful!":                         "Inscrição realizada com sucesso!",
	"Register for %s":                                  "Inscrever-se em %s",
	"%d spots left":                                    "%d vagas restantes",
	"Full":                                             "Lotado",

	// ownership
	"You do not have permission to modify this event.":                   "Você não tem permissão para modificar este evento.",
	"You do not have permission to view registrants of this event.":      "Você não tem permissão para ver os inscritos deste evento.",
	"You do not have permission to leave feedback on this registration.": "Você não tem permissão para avaliar esta inscrição.",

	// events
	"Events":                                  "Eventos",
	"No events yet.":                          "Nenhum evento ainda.",
	"Create event":                            "Criar evento",
	"Edit event":                              "Editar evento",
	"Delete event":                            "Excluir evento",
	"Event created successfully.":             "Evento criado com sucesso.",
	"Event updated successfully.":             "Evento atualizado com sucesso.",
	"Event deleted successfully.":             "Evento excluído com sucesso.",
	"Are you sure you want to delete \"%s\"?": "Tem certeza de que deseja excluir \"%s\"?",
	"Registrants":                             "Inscritos",
	"No registrants yet.":                     "Nenhum inscrito ainda.",
	"Title":                                   "Título",
	"Description":                             "Descrição",
	"Date":                                    "Data",
	"Location":                                "Local",
	"Capacity":                                "Capacidade",
	"Banner":                                  "Banner",
	"Save":                                    "Salvar",
	"Cancel":                                  "Cancelar",
	"Delete":                                  "Excluir",
	"Edit":                                    "Editar",
	"Register":                                "Inscrever-se",
	"Name":                                    "Nome",
	"Email":                                   "E-mail",
	"Phone":                                   "Telefone",
	"Gender":                                  "Gênero",
	"Registered at":                           "Inscrito em",
	"Feedback":                                "Avaliação",
	"male":                                    "masculino",
	"female":                                  "feminino",
	"other":                                   "outro",

	// feedback
	"My registrations":               "Minhas inscrições",
	"You have no registrations yet.": "Você ainda não tem inscrições.",
	"Leave feedback":                 "Deixar avaliação",
	"Thank you for your feedback!":   "Obrigado pela sua avaliação!",

	// account and auth
	"Account":                                                                    "Conta",
	"Your account has been updated.":                                             "Sua conta foi atualizada.",
	"Your old password was entered incorrectly.":                                 "Sua senha antiga foi digitada incorretamente.",
	"This email is already in use.":                                              "Este e-mail já está em uso.",
	"The two password fields didn't match.":                                      "Os dois campos de senha não correspondem.",
	"This password is too short. It must contain at least %d characters.":        "Esta senha é muito curta. Ela deve conter pelo menos %d caracteres.",
	"This password is too long. It must contain at most %d bytes.":               "Esta senha é muito longa. Ela deve conter no máximo %d bytes.",
	"Invalid email or password.":                                                 "E-mail ou senha inválidos.",
	"Log in":                                                                     "Entrar",
	"Log out":                                                                    "Sair",
	"Sign up":                                                                    "Cadastrar-se",
	"Password":                                                                   "Senha",
	"Confirm password":                                                           "Confirmar senha",
	"Old password":                                                               "Senha antiga",
	"New password":                                                               "Nova senha",
	"New password confirmation":                                                  "Confirmação da nova senha",
	"Account created. You can log in now.":                                       "Conta criada. Você já pode entrar.",
	"Forgot your password?":                                                      "Esqueceu sua senha?",
	"Reset password":                                                             "Redefinir senha",
	"Check your email":                                                           "Verifique seu e-mail",
	"If an account exists for that email, we sent a link to reset the password.": "Se existir uma conta com esse e-mail, enviamos um link para redefinir a senha.",
	"Password reset":                                                             "Redefinição de senha",
	"Use this link to set a new password: %s":                                    "Use este link para definir uma nova senha: %s",
	"Your password has been set. You may log in now.":                            "Sua senha foi definida. Você já pode entrar.",
	"This password reset link is invalid or has expired.":                        "Este link de redefinição de senha é inválido ou expirou.",
	"Please log in to continue.":                                                 "Entre para continuar.",

	// form validation
	"Please correct the errors below.":                  "Corrija os erros abaixo.",
	"This field is required.":                           "Este campo é obrigatório.",
	"Enter a valid email address.":                      "Informe um endereço de e-mail válido.",
	"Ensure this value has at most %d characters.":      "Certifique-se de que o valor tenha no máximo %d caracteres.",
	"Ensure this value is greater than or equal to %d.": "Certifique-se de que o valor seja maior ou igual a %d.",
	"Enter a valid date.":                               "Informe uma data válida.",
	"Enter a whole number.":                             "Informe um número inteiro.",
	"Select a valid choice.":                            "Selecione uma opção válida.",
	"Enter a valid value.":                              "Informe um valor válido.",
	"Upload a valid image.":                             "Envie uma imagem válida.",
	"The uploaded file is too large.":                   "O arquivo enviado é muito grande.",

	// errors
	"Page not found":                                "Página não encontrada",
	"The page you are looking for does not exist.":  "A página que você procura não existe.",
	"Method not allowed":                            "Método não permitido",
	"Bad request":                                   "Requisição inválida",
	"Server error":                                  "Erro no servidor",
	"Something went wrong. Please try again later.": "Algo deu errado. Tente novamente mais tarde.",
}
