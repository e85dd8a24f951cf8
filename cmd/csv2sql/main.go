// Command csv2sql converts one large delimited text file into a T-SQL script
// that recreates a wide-text table and bulk-inserts the data in batched
// INSERT statements.
//
// Example:
//
//	csv2sql run exports/customers.txt march_load --lines=10000 --delimiter='|'
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for CSV2SQL_* overrides; absence is not an error.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
