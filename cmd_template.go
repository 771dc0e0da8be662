package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"tapewriter/template"
)

func runTemplate(args []string) error {
	if len(args) < 1 {
		return errors.New("template needs a subcommand: add, list, show or delete")
	}

	switch args[0] {
	case "add":
		return runTemplateAdd(args[1:])
	case "list":
		return runTemplateList(args[1:])
	case "show":
		return runTemplateShow(args[1:])
	case "delete":
		return runTemplateDelete(args[1:])
	}
	return fmt.Errorf("unknown template subcommand: %s", args[0])
}

func runTemplateAdd(args []string) error {
	fs := flag.NewFlagSet("template add", flag.ContinueOnError)
	name := fs.String("name", "", "name to store the template under")
	file := fs.String("file", "", "path to the template file")
	db := fs.String("db", defaultDbPath, "path to the template database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *file == "" {
		return errors.New("template add needs -name and -file")
	}

	source, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	// reject broken templates at add time, not at print time
	if _, err := template.Parse(string(source)); err != nil {
		return err
	}

	repo, err := openRepository(*db)
	if err != nil {
		return err
	}
	defer repo.Close()

	return repo.Transact(func(tx *sql.Tx) error {
		rec, err := repo.Create(tx, *name, string(source))
		if err != nil {
			return err
		}
		fmt.Printf("Stored %q as %s\n", rec.Name, rec.Uuid)
		return nil
	})
}

func runTemplateList(args []string) error {
	fs := flag.NewFlagSet("template list", flag.ContinueOnError)
	db := fs.String("db", defaultDbPath, "path to the template database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, err := openRepository(*db)
	if err != nil {
		return err
	}
	defer repo.Close()

	records, err := repo.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No stored templates.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%-24s %s  %s\n", rec.Name, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Uuid)
	}
	return nil
}

func runTemplateShow(args []string) error {
	fs := flag.NewFlagSet("template show", flag.ContinueOnError)
	name := fs.String("name", "", "name of the stored template")
	db := fs.String("db", defaultDbPath, "path to the template database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("template show needs -name")
	}

	repo, err := openRepository(*db)
	if err != nil {
		return err
	}
	defer repo.Close()

	rec, err := repo.GetByName(*name)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no stored template named %q", *name)
	}
	fmt.Print(rec.Source)
	return nil
}

func runTemplateDelete(args []string) error {
	fs := flag.NewFlagSet("template delete", flag.ContinueOnError)
	name := fs.String("name", "", "name of the stored template")
	db := fs.String("db", defaultDbPath, "path to the template database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("template delete needs -name")
	}

	repo, err := openRepository(*db)
	if err != nil {
		return err
	}
	defer repo.Close()

	return repo.Transact(func(tx *sql.Tx) error {
		deleted, err := repo.Delete(tx, *name)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("no stored template named %q", *name)
		}
		fmt.Printf("Deleted %q\n", *name)
		return nil
	})
}
