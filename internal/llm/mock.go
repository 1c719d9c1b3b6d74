package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content string
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for testing and offline demos.
// It returns canned responses in FIFO order and records all requests.
// Once the queue is drained it answers with Fallback, if set.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Fallback  *MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewDemoProvider returns a mock that always answers with SampleWorksheet.
func NewDemoProvider() *MockProvider {
	return &MockProvider{Fallback: &MockResponse{
		Content: SampleWorksheet,
		Usage:   Usage{InputTokens: 420, OutputTokens: 610, TotalTokens: 1030},
	}}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty and no fallback is set.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Fallback != nil:
		resp = *m.Fallback
	default:
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SampleWorksheet is a short but complete worksheet used by the demo provider.
const SampleWorksheet = `# LKPD Matematika: Pecahan Senilai

## 1. Identitas LKPD
- **Nama Sekolah:** ....................
- **Mata Pelajaran:** Matematika
- **Kelas/Semester:** 4 / 1
- **Materi:** Pecahan Senilai
- **Alokasi Waktu:** 2 JP (2 x 35 menit)

## 2. Capaian Pembelajaran (CP)
Pada akhir Fase B, peserta didik dapat membandingkan dan mengurutkan pecahan, serta mengenali pecahan senilai menggunakan gambar dan simbol matematika.

## 3. Tujuan Pembelajaran
1. Peserta didik mampu menjelaskan pecahan senilai dengan bantuan gambar.
2. Peserta didik mampu menentukan dua pecahan yang senilai.

## 4. Petunjuk Belajar
1. Berdoalah sebelum memulai kegiatan.
2. Bacalah materi singkat dengan saksama.
3. Kerjakan aktivitas bersama kelompokmu.

## 5. Materi Singkat
Pecahan senilai adalah pecahan-pecahan yang nilainya sama walaupun pembilang dan penyebutnya berbeda. Contoh: **1/2 = 2/4 = 3/6**.

> Kalikan atau bagi pembilang dan penyebut dengan bilangan yang sama untuk mendapatkan pecahan senilai.

## 6. Kegiatan Pembelajaran
### Pendahuluan
Guru menampilkan gambar pizza yang dipotong menjadi 2 dan 4 bagian.
### Inti
Peserta didik mengamati, berdiskusi, dan menuliskan pecahan yang senilai.
### Penutup
Peserta didik menyimpulkan pengertian pecahan senilai.

## 7. Lembar Aktivitas Siswa
| Gambar | Pecahan | Pecahan Senilai |
|---|---|---|
| Pizza 2 potong, 1 diambil | 1/2 | ... |
| Cokelat 6 kotak, 3 diambil | 3/6 | ... |

## 8. Latihan Soal
1. Pecahan yang senilai dengan 1/3 adalah ...
   a. 2/3  b. 2/6  c. 3/6  d. 1/6
2. Pecahan yang senilai dengan 2/5 adalah ...
   a. 4/10  b. 4/5  c. 2/10  d. 5/2

## 9. Rubrik Penilaian
| Aspek | Skor |
|---|---|
| Ketepatan jawaban | 1-4 |
| Kerja sama kelompok | 1-4 |

## 10. Refleksi
- Apa yang sudah kamu pahami hari ini?
- Bagian mana yang masih sulit?

---

**Kunci Jawaban:** 1. b  2. a
`
