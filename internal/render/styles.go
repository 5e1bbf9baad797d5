package render

const (
	colorBalance   = "#3498db"
	colorRemaining = "#e74c3c"
)

const baseCSS = `
        body {
            margin: 0;
            background: #333;
            color: white;
            font-family: Arial, sans-serif;
        }
        .chart-container {
            position: relative;
            width: min(80vw, 400px);
            aspect-ratio: 1;
        }
        .pie {
            width: 100%;
            height: 100%;
            border-radius: 50%;
        }
        .pace-marker {
            position: absolute;
            top: 50%;
            left: 50%;
            width: 50%;
            height: 2px;
            background: #f1c40f;
            transform-origin: 0 50%;
        }
        .legend {
            margin-top: 1.5rem;
            display: flex;
            gap: 1.5rem;
            flex-wrap: wrap;
            justify-content: center;
        }
        .legend-item {
            display: flex;
            align-items: center;
            gap: 0.5rem;
            font-size: clamp(0.875rem, 2vw, 1rem);
        }
        .color-box {
            width: clamp(1rem, 2vw, 1.25rem);
            height: clamp(1rem, 2vw, 1.25rem);
        }
        .balance {
            background: #3498db;
        }
        .remaining {
            background: #e74c3c;
        }
        h2 {
            font-size: clamp(1.5rem, 3vw, 2rem);
            margin-bottom: 2rem;
        }
`

const pageCSS = `
        .container {
            display: flex;
            flex-direction: column;
            justify-content: center;
            align-items: center;
            height: 100vh;
            padding: 1rem;
        }
`

const dashboardCSS = `
        h1 {
            text-align: center;
            font-size: clamp(1.75rem, 4vw, 2.5rem);
        }
        .grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(280px, 1fr));
            gap: 2rem;
            padding: 1.5rem;
        }
        .chart-card {
            display: flex;
            flex-direction: column;
            align-items: center;
            cursor: pointer;
        }
        .chart-card .chart-container {
            width: min(70vw, 240px);
        }
        .chart-card h2 {
            font-size: clamp(1.1rem, 2vw, 1.4rem);
            margin-bottom: 1rem;
        }
        .chart-card.spin .pie {
            animation: spin 0.8s ease-in-out;
        }
        @keyframes spin {
            from { transform: rotate(0deg); }
            to { transform: rotate(360deg); }
        }
`

// clickScript replays a spin animation on the clicked card. Nothing is stored.
const clickScript = `
        document.querySelectorAll('.chart-card').forEach(function (card) {
            card.addEventListener('click', function () {
                card.classList.remove('spin');
                void card.offsetWidth;
                card.classList.add('spin');
            });
        });
`
