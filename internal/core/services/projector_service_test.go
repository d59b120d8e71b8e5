package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
	"github.com/0minute/VoucherAI/internal/core/services"
)

func sampleLines() []domain.JournalLine {
	return []domain.JournalLine{
		{
			BatchNo:      1,
			LineNo:       1,
			PostingDate:  "2025-03-01",
			AccountCode:  "25300",
			AccountTitle: "미지급금",
			Side:         domain.Credit,
			Amount:       decimal.NewFromInt(1000000),
			CustomerName: "벤더A",
			CustomerCode: "V001",
			ProjectCode:  "HUNTRIX001",
			ProjectName:  "HUNTRIX",
			Memo:         "세금계산서_20250301_HUNTRIX_벤더A_연예보조_기타",
			FileID:       "a.pdf",
		},
	}
}

func TestProjectToDZColumns(t *testing.T) {
	projector := services.NewProjectorService(domain.DefaultFieldSchema())

	rows, err := projector.Project(sampleLines(), domain.TargetDZ)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2025-03-01", row["전표일자"])
	assert.Equal(t, 1, row["라인번호"])
	assert.Equal(t, "25300", row["계정코드"])
	assert.Equal(t, "미지급금", row["계정과목명"])
	assert.Equal(t, "대변", row["차변/대변구분"])
	assert.Equal(t, "1000000", row["금액(원화)"])
	assert.Equal(t, "벤더A", row["거래처명"])
	assert.Equal(t, "HUNTRIX001", row["프로젝트코드"])
	assert.Equal(t, "a.pdf", row["관리항목1"])
}

func TestProjectToSAPColumns(t *testing.T) {
	projector := services.NewProjectorService(domain.DefaultFieldSchema())

	rows, err := projector.Project(sampleLines(), domain.TargetSAP)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2025-03-01", row["BUDAT"])
	assert.Equal(t, 1, row["BUZEI"])
	assert.Equal(t, "25300", row["HKONT"])
	assert.Equal(t, "대변", row["SHKZG"])
	assert.Equal(t, "1000000", row["DMBTR"])
	assert.Equal(t, "벤더A", row["ZLIFN"])
	assert.Equal(t, "V001", row["LIFNR"])
	assert.Equal(t, "HUNTRIX001", row["PRCTR"])
	assert.Equal(t, "세금계산서_20250301_HUNTRIX_벤더A_연예보조_기타", row["SGTXT"])

	// SAP has no column for account title or file id, both are dropped.
	assert.NotContains(t, row, "계정과목명")
	assert.NotContains(t, row, "관리항목1")
	assert.Len(t, row, 10)
}

func TestProjectUnknownTargetRejected(t *testing.T) {
	projector := services.NewProjectorService(domain.DefaultFieldSchema())

	_, err := projector.Project(sampleLines(), "ORACLE")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestProjectEmptyLines(t *testing.T) {
	projector := services.NewProjectorService(domain.DefaultFieldSchema())

	rows, err := projector.Project(nil, domain.TargetDZ)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
