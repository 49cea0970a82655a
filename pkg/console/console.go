package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	// Use o pterm para criar uma tabela visualmente agradável
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayTrendBars exibe gráficos de barras para a tendência mensal de valores.
func (c *Console) DisplayTrendBars(title string, currency string, months []types.MonthlyAmount) {
	maxAmount := 0.0
	for _, m := range months {
		if m.Amount > maxAmount {
			maxAmount = m.Amount
		}
	}

	if maxAmount == 0 {
		pterm.Warning.Printfln("No activity recorded for this period (%s 0)", currency)
		return
	}

	printer := message.NewPrinter(language.English)
	tableData := pterm.TableData{
		{"Month", "Amount", "", "MoM Change"},
	}

	var prevAmount *float64

	for _, m := range months {
		barLength := int((m.Amount / maxAmount) * 40)
		bar := strings.Repeat("█", barLength)

		barColor := pterm.FgGreen.Sprint(bar)
		change := ""

		if prevAmount != nil {
			if *prevAmount < 0.01 {
				if m.Amount < 0.01 {
					change = pterm.FgYellow.Sprint("0%")
					barColor = pterm.FgYellow.Sprint(bar)
				} else {
					change = pterm.FgGreen.Sprint("N/A")
				}
			} else {
				changePercent := ((m.Amount - *prevAmount) / *prevAmount) * 100.0

				switch {
				case math.Abs(changePercent) < 0.01:
					change = pterm.FgYellow.Sprintf("0%%")
					barColor = pterm.FgYellow.Sprint(bar)
				case math.Abs(changePercent) > 999:
					if changePercent > 0 {
						change = pterm.FgGreen.Sprint(">+999%")
					} else {
						change = pterm.FgRed.Sprint(">-999%")
						barColor = pterm.FgRed.Sprint(bar)
					}
				case changePercent > 0:
					change = pterm.FgGreen.Sprintf("+%.2f%%", changePercent)
				default:
					change = pterm.FgRed.Sprintf("%.2f%%", changePercent)
					barColor = pterm.FgRed.Sprint(bar)
				}
			}
		}

		tableData = append(tableData, []string{
			m.Month,
			printer.Sprintf("%s %.2f", currency, m.Amount),
			barColor,
			change,
		})

		current := m.Amount
		prevAmount = &current
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgGreen)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
