package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"stock-available/internal/app"
	"stock-available/internal/core"
)

const usage = "Available: qty [--fields a,b] <product-code>..., fields, schema, locations [flag], products"

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	if err := Execute(ctx, svc, args, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// Execute runs one subcommand and writes its output to w.
func Execute(ctx context.Context, svc app.ApplicationService, args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}

	switch args[0] {
	case "fields", "f":
		result, err := svc.DescribeFields(ctx)
		if err != nil {
			return fmt.Errorf("failed to describe fields: %w", err)
		}
		printFields(w, result)
		return nil

	case "schema":
		result, err := svc.QuantitySchema()
		if err != nil {
			return fmt.Errorf("failed to build schema: %w", err)
		}
		var pretty any
		if err := json.Unmarshal(result.Schema, &pretty); err != nil {
			return fmt.Errorf("failed to decode schema: %w", err)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pretty)
	}

	company, err := svc.LoadDefaultCompany(ctx)
	if err != nil {
		return fmt.Errorf("failed to load company: %w", err)
	}

	switch args[0] {
	case "qty", "q":
		req := app.QuantityRequest{CompanyCode: company.CompanyCode}
		rest := args[1:]
		if len(rest) >= 2 && rest[0] == "--fields" {
			fields, err := core.ParseFields(rest[1])
			if err != nil {
				return err
			}
			req.Fields = fields
			rest = rest[2:]
		}
		req.ProductCodes = rest
		result, err := svc.GetProductQuantities(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to compute quantities: %w", err)
		}
		printQuantities(w, company, result)

	case "locations", "loc":
		flag := ""
		if len(args) > 1 {
			flag = args[1]
		}
		result, err := svc.ListLocations(ctx, company.CompanyCode, flag)
		if err != nil {
			return fmt.Errorf("failed to list locations: %w", err)
		}
		printLocations(w, result)

	case "products", "prod":
		result, err := svc.ListProducts(ctx, company.CompanyCode)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		fmt.Fprintf(w, "  %-12s %-30s %s\n", "CODE", "NAME", "UNIT")
		for _, p := range result.Products {
			fmt.Fprintf(w, "  %-12s %-30s %s\n", p.Code, p.Name, p.Unit)
		}

	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
	return nil
}

func printQuantities(w io.Writer, company *core.Company, result *app.QuantityResult) {
	width := 14 + 16*len(result.Fields)
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintf(w, "  PRODUCT QUANTITIES\n")
	fmt.Fprintf(w, "  Company : %s %s\n", company.CompanyCode, company.Name)
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintf(w, "  %-12s", "CODE")
	for _, f := range result.Fields {
		spec, _ := core.LookupField(f)
		fmt.Fprintf(w, "%16s", strings.ToUpper(spec.Label))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", width))
	for _, row := range result.Rows {
		fmt.Fprintf(w, "  %-12s", row.Product.Code)
		for _, f := range result.Fields {
			v, _ := row.Quantities.Get(f)
			fmt.Fprintf(w, "%16s", v.String())
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("-", width))
	fmt.Fprintf(w, "  %-12s", "TOTAL")
	for _, f := range result.Fields {
		fmt.Fprintf(w, "%16s", result.Totals[f].String())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

func printFields(w io.Writer, result *app.FieldListResult) {
	fmt.Fprintf(w, "  %-24s %-22s %6s  %s\n", "FIELD", "LABEL", "DIGITS", "PROVIDER")
	for _, f := range result.Fields {
		provider := f.Module
		if f.Target != f.Name {
			provider += " -> " + string(f.Target)
		}
		fmt.Fprintf(w, "  %-24s %-22s %6d  %s\n", f.Name, f.Label, f.Digits, provider)
	}
}

func printLocations(w io.Writer, result *app.LocationListResult) {
	fmt.Fprintf(w, "  %-6s %-22s %-8s %s\n", "ID", "CODE", "INTERNAL", "FLAGS")
	for _, l := range result.Locations {
		var flags []string
		for _, f := range core.LocationFlags {
			if l.HasFlag(f) {
				flags = append(flags, string(f))
			}
		}
		fmt.Fprintf(w, "  %-6d %-22s %-8t %s\n", l.ID, l.Code, l.IsInternal, strings.Join(flags, ","))
	}
}
