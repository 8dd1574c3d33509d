package main

import (
	"context"
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"personDirectory/internal/db"
	"personDirectory/internal/styled"
	"personDirectory/models"
	"personDirectory/repository"
)

type cliArgs struct {
	DB     string `arg:"--db,env:DB_PATH" help:"SQLite database file path" default:"persons.db"`
	Memory bool   `arg:"--memory" help:"Use a temporary in-memory database instead of a file"`
}

var seedPerson = models.Person{
	Username:   "Neo",
	Email:      "ThomasAnderson@gmail.com",
	FirstName:  "Thomas",
	LastName:   "Anderson",
	Biography:  "Thomas Anderson is a Computer Programmer.",
	Occupation: "Computer Programmer",
}

var seedBatch = []models.Person{
	{Username: "Janey", Email: "JaneDoe@gmail.com", FirstName: "Jane", LastName: "Doe", Biography: "Jane Doe is a Software Engineer.", Occupation: "Software Engineer"},
	{Username: "Joey", Email: "JoeShmo@gmail.com", FirstName: "Joseph", LastName: "Shmo", Biography: "Joseph Shmo is a Data Scientist.", Occupation: "Data Scientist"},
	{Username: "Jonny", Email: "JohnSmith@gmail.com", FirstName: "John", LastName: "Smith", Biography: "John Doe is a Database Administrator.", Occupation: "Database Administrator"},
}

// main walks through every operation of the record store: rebuild the table,
// seed it, print it ordered by lastname, then run the three searches.
func main() {
	var args cliArgs
	arg.MustParse(&args)

	dsn := args.DB
	if args.Memory {
		dsn = "file:persondemo?mode=memory&cache=shared"
	}

	d, err := db.Open(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	people := repository.NewPersonRepository(d)
	ctx := context.Background()
	heading := color.New(color.FgCyan, color.Bold)

	if err := people.DropTable(ctx); err != nil {
		log.Fatalf("drop table: %v", err)
	}
	if err := people.CreateTable(ctx); err != nil {
		log.Fatalf("create table: %v", err)
	}

	heading.Println("table functions:")
	if err := people.InsertOne(ctx, seedPerson); err != nil {
		log.Fatalf("insert one: %v", err)
	}
	if err := people.InsertMany(ctx, seedBatch); err != nil {
		log.Fatalf("insert many: %v", err)
	}
	all, err := people.FetchAll(ctx)
	if err != nil {
		log.Fatalf("fetch all: %v", err)
	}
	renderPersons(all)

	heading.Println("search functions:")
	exact, err := people.FindByLastNameExact(ctx, "Shmo")
	if err != nil {
		log.Fatalf("search lastname exact: %v", err)
	}
	fmt.Println("lastname match:")
	renderPerson(exact)

	bio, err := people.FindByBiographyContains(ctx, "eng")
	if err != nil {
		log.Fatalf("search biography: %v", err)
	}
	fmt.Println("biography match:")
	renderPerson(bio)

	names, err := people.FindByLastNameContains(ctx, "s")
	if err != nil {
		log.Fatalf("search lastname partial: %v", err)
	}
	fmt.Println("matches for: s")
	renderNames(names)
}

func renderPersons(people []models.Person) {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Username", "Email", "First Name", "Last Name", "Biography", "Occupation"})
	for _, p := range people {
		tw.AppendRow(table.Row{p.Username, p.Email, p.FirstName, p.LastName, p.Biography, p.Occupation})
	}
	fmt.Println(tw.Render())
}

func renderPerson(p *models.Person) {
	if p == nil {
		fmt.Println("    no match")
		return
	}
	renderPersons([]models.Person{*p})
}

func renderNames(names []models.PersonName) {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"First Name", "Last Name"})
	for _, n := range names {
		tw.AppendRow(table.Row{n.FirstName, n.LastName})
	}
	fmt.Println(tw.Render())
}
