// Package cli is a small command-line front end over the portal client SDK,
// used for smoke-testing the API and for operational tasks (e.g. checking a
// user's profile) without the mobile app.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/conectaedu/portal/internal/client"
)

// App dispatches CLI subcommands to the API client.
type App struct {
	client *client.Client
	out    io.Writer
}

// NewApp creates a CLI app writing human-readable output to out.
func NewApp(c *client.Client, out io.Writer) *App {
	return &App{client: c, out: out}
}

const usage = `usage: portal <command> [flags]

commands:
  cadastro   -nome NOME -email EMAIL -senha SENHA
  login      -email EMAIL -senha SENHA
  logout
  perfil
  usuarios
  agendar    -titulo TITULO -data RFC3339 [-descricao TEXTO]
  agendamentos
  cancelar   -id ID
`

// Run executes one subcommand. args excludes the program name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("comando não informado")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "cadastro":
		return a.cadastro(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "perfil":
		return a.perfil(ctx)
	case "usuarios":
		return a.usuarios(ctx)
	case "agendar":
		return a.agendar(ctx, rest)
	case "agendamentos":
		return a.agendamentos(ctx)
	case "cancelar":
		return a.cancelar(ctx, rest)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("comando desconhecido: %s", cmd)
	}
}

func (a *App) cadastro(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cadastro", flag.ContinueOnError)
	nome := fs.String("nome", "", "nome completo")
	email := fs.String("email", "", "e-mail")
	senha := fs.String("senha", "", "senha (mínimo 6 caracteres)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.client.Cadastro(ctx, client.RegisterRequest{
		Nome:  *nome,
		Email: *email,
		Senha: *senha,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "usuário cadastrado: %s <%s>\n", user.Nome, user.Email)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "e-mail")
	senha := fs.String("senha", "", "senha")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.client.Login(ctx, *email, *senha)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "login ok: %s (%s)\n", sess.User.Nome, sess.User.Tipo)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "sessão encerrada")
	return nil
}

func (a *App) perfil(ctx context.Context) error {
	user, err := a.client.Perfil(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> tipo=%s id=%s\n", user.Nome, user.Email, user.Tipo, user.ID)
	return nil
}

func (a *App) usuarios(ctx context.Context) error {
	users, err := a.client.Usuarios(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", u.ID, u.Email, u.Tipo)
	}
	return nil
}

func (a *App) agendar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("agendar", flag.ContinueOnError)
	titulo := fs.String("titulo", "", "título do agendamento")
	descricao := fs.String("descricao", "", "descrição (opcional)")
	data := fs.String("data", "", "data/hora no formato RFC3339")
	if err := fs.Parse(args); err != nil {
		return err
	}

	when, err := time.Parse(time.RFC3339, *data)
	if err != nil {
		return fmt.Errorf("data inválida (use RFC3339, ex. 2026-09-01T14:00:00-03:00): %w", err)
	}

	ag, err := a.client.CriarAgendamento(ctx, client.AgendamentoRequest{
		Titulo:    *titulo,
		Descricao: *descricao,
		Data:      when,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "agendamento criado: %s (%s)\n", ag.ID, ag.Status)
	return nil
}

func (a *App) agendamentos(ctx context.Context) error {
	list, err := a.client.ListarAgendamentos(ctx)
	if err != nil {
		return err
	}
	for _, ag := range list {
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n",
			ag.ID, ag.Data.Format(time.RFC3339), ag.Status, ag.Titulo)
	}
	return nil
}

func (a *App) cancelar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancelar", flag.ContinueOnError)
	id := fs.String("id", "", "id do agendamento")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ag, err := a.client.CancelarAgendamento(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "agendamento %s: %s\n", ag.ID, ag.Status)
	return nil
}
