package model

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

const (
	// IDLength: длина идентификаторов пользователей и кампаний.
	IDLength = 60

	idAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idRandomPart = 40
)

// GenerateID создаёт идентификатор из 60 символов: 20 цифр времени
// (год, минута, день, час, минута, секунда, микросекунды) и 40 случайных символов [A-Za-z0-9].
// Уникальность не проверяется, коллизию поймает первичный ключ.
func GenerateID() string {
	return generateID(time.Now(), rand.Reader)
}

func generateID(now time.Time, rnd io.Reader) string {
	prefix := fmt.Sprintf("%04d%02d%02d%02d%02d%02d%06d",
		now.Year(), now.Minute(), now.Day(), now.Hour(), now.Minute(), now.Second(), now.Nanosecond()/1000)

	buf := make([]byte, idRandomPart)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rnd, max)
		if err != nil {
			// crypto/rand на поддерживаемых платформах не возвращает ошибок
			panic(fmt.Sprintf("generate id: %v", err))
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return prefix + string(buf)
}
