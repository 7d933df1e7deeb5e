package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/spreadsheet"
	"github.com/at-ishikawa/estudazilla/internal/testutil"
)

func TestSheetGenerateCommand(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	dir := filepath.Join(tmpDir, "planilhas")

	tests := []struct {
		name        string
		args        []string
		wantPath    string
		wantHeaders []string
		wantErr     error
	}{
		{
			name:        "template with derived name",
			args:        []string{"sheet", "generate", "--type", "Registro de Estudos", "--dir", dir},
			wantPath:    filepath.Join(dir, "controle_registro_de_estudos.xlsx"),
			wantHeaders: []string{"Tópico", "Data", "Horas", "Status", "Notas"},
		},
		{
			name:    "existing file",
			args:    []string{"sheet", "generate", "--type", "Registro de Estudos", "--dir", dir},
			wantErr: spreadsheet.ErrFileExists,
		},
		{
			name:        "custom headers overwriting",
			args:        []string{"sheet", "generate", "--type", "Personalizado", "--name", "controle_registro_de_estudos", "--headers", "A,B", "--rows", "3", "--dir", dir, "--overwrite"},
			wantPath:    filepath.Join(dir, "controle_registro_de_estudos.xlsx"),
			wantHeaders: []string{"A", "B"},
		},
		{
			name:    "custom without headers",
			args:    []string{"sheet", "generate", "--type", "Personalizado", "--dir", dir},
			wantErr: spreadsheet.ErrNoHeaders,
		},
		{
			name:    "unknown template",
			args:    []string{"sheet", "generate", "--type", "Orçamento", "--dir", dir},
			wantErr: spreadsheet.ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, cfgPath, "", tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantPath)

			out, err = runCommand(t, cfgPath, "", "sheet", "headers", tt.wantPath)
			require.NoError(t, err)
			headers, err := spreadsheet.ReadHeaders(tt.wantPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeaders, headers)
			assert.Contains(t, out, tt.wantHeaders[0])
		})
	}
}

func TestSheetTypesCommand(t *testing.T) {
	out, err := runCommand(t, testutil.SetupTestConfig(t, t.TempDir()), "", "sheet", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Controle de Estoque: Item, Quantidade, Localização, Fornecedor, Última Atualização")
	assert.Contains(t, out, "Personalizado\n")
}
