package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/domain"
)

func TestEntry_Validate_AllRequiredPresent(t *testing.T) {
	e := domain.Entry{
		Date:             "01/01/2025",
		IdentityDocument: "111",
		PatientName:      "Ana",
		Procedure:        "Curación",
	}
	assert.NoError(t, e.Validate())
}

func TestEntry_Validate_ListsMissingFields(t *testing.T) {
	e := domain.Entry{
		Date:        "01/01/2025",
		PatientName: "   ",
		Insurer:     "EPS-A",
	}

	err := e.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"identity_document", "patient_name", "procedure"}, verr.Fields)
	assert.Contains(t, err.Error(), "identity_document, patient_name, procedure")
}

func TestEntry_Validate_OptionalFieldsMayBeEmpty(t *testing.T) {
	e := domain.Entry{
		Date:             "28/07/2025",
		IdentityDocument: "12345678",
		PatientName:      "Paciente Ejemplo",
		Procedure:        "Terapia Respiratoria",
	}
	assert.Empty(t, e.MissingRequired())
}
