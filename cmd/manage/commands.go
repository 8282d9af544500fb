package main

import "github.com/urfave/cli/v3"

func usernameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "username",
		Aliases:  []string{"u"},
		Usage:    "Account username",
		Required: true,
	}
}

func (r *Runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "manage",
		Usage: "songvault account and media maintenance",
		Commands: []*cli.Command{
			{
				Name:  "create-user",
				Usage: "Create an account, optionally with staff access",
				Flags: []cli.Flag{
					usernameFlag(),
					&cli.StringFlag{Name: "email", Usage: "Contact email"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Initial password", Required: true},
					&cli.BoolFlag{Name: "staff", Usage: "Grant catalog administration"},
				},
				Action: r.CreateUser,
			},
			{
				Name:  "set-staff",
				Usage: "Grant or revoke staff access",
				Flags: []cli.Flag{
					usernameFlag(),
					&cli.BoolFlag{Name: "revoke", Usage: "Remove staff access instead of granting it"},
				},
				Action: r.SetStaff,
			},
			{
				Name:  "set-active",
				Usage: "Reactivate or deactivate an account",
				Flags: []cli.Flag{
					usernameFlag(),
					&cli.BoolFlag{Name: "deactivate", Usage: "Block logins and existing tokens"},
				},
				Action: r.SetActive,
			},
			{
				Name:  "set-password",
				Usage: "Replace an account password",
				Flags: []cli.Flag{
					usernameFlag(),
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password", Required: true},
				},
				Action: r.SetPassword,
			},
			{
				Name:   "delete-user",
				Usage:  "Delete an account with its albums and favorites",
				Flags:  []cli.Flag{usernameFlag()},
				Action: r.DeleteUser,
			},
			{
				Name:   "cleanup-media",
				Usage:  "Remove uploaded files no song or artist references",
				Action: r.CleanupMedia,
			},
		},
	}
}
